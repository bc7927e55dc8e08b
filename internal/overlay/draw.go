package overlay

import (
	"fmt"

	"github.com/castaneai/skhook/internal/render"
)

const (
	fontLarge = 2
	fontSmall = 1.5

	bannerWidth   = 300
	bannerHeight  = 80
	bannerMargin  = 20
	maxNameLength = 25

	menuX, menuY = 50, 100
	menuWidth    = 350
	menuTitle    = 30
	menuItemStep = 30
)

var (
	statusBarColor = render.ARGB(200, 0, 0, 0)
	bannerBgColor  = render.ARGB(200, 0, 0, 0)
	bossColor      = render.RGB(255, 100, 100)
	specialColor   = render.RGB(255, 200, 100)
	musicColor     = render.RGB(100, 100, 255)
	menuBgColor    = render.ARGB(220, 20, 20, 20)
	menuAccent     = render.RGB(255, 200, 0)
	highlightColor = render.ARGB(100, 255, 255, 0)
	captionColor   = render.ARGB(150, 150, 150, 255)
	composerColor  = render.ARGB(200, 200, 200, 200)
	stageColor     = render.ARGB(180, 180, 180, 180)
)

// Draw renders the overlay for the state left by the last Update.
func (c *Context) Draw(cv *render.Canvas, vp render.Viewport) {
	if c.opts.StatusBar {
		c.drawStatusBar(cv)
	}
	if c.ShowFPS.On() {
		cv.DrawString(10, 250, fmt.Sprintf("FPS: %d", c.fps.value), render.Yellow, fontSmall)
	}
	if c.ShowBGM.On() && c.fade.Visible() && c.hasShown {
		c.drawBanner(cv, vp)
	}
	if c.Menu.Visible {
		c.drawMenu(cv)
	}
}

func (c *Context) drawStatusBar(cv *render.Canvas) {
	cv.FillRect(10, 10, 200, 25, statusBarColor)
	cv.Border(10, 10, 200, 25, 2, render.Yellow)
	cv.DrawString(15, 12, "SK MOD - INSERT = MENU", render.Yellow, fontLarge)
	if c.Menu.Visible {
		return
	}
	y := float32(40)
	for _, name := range c.Cheats.Enabled() {
		cv.DrawString(15, y, "["+name+" ON]", render.Green, fontLarge)
		y += 20
	}
}

func (c *Context) drawBanner(cv *render.Canvas, vp render.Viewport) {
	a := c.fade.Alpha
	x := float32(vp.Width) - bannerWidth - bannerMargin
	y := float32(vp.Height) - bannerHeight - bannerMargin
	t := c.shown.Track

	border := musicColor
	switch {
	case t.Boss:
		border = bossColor
	case t.Special:
		border = specialColor
	}
	cv.FillRect(x, y, bannerWidth, bannerHeight, bannerBgColor.Fade(a))
	cv.Border(x, y, bannerWidth, bannerHeight, 2, border.Fade(a))

	cv.DrawString(x+10, y+5, "NOW PLAYING", captionColor.Fade(a), fontSmall)
	if c.shown.FirstTime {
		cv.DrawString(x+bannerWidth-10-render.TextWidth("NEW", fontSmall), y+5, "NEW", render.Yellow.Fade(a), fontSmall)
	}
	cv.DrawString(x+10, y+25, truncate(t.Name, maxNameLength), render.White.Fade(a), fontLarge)
	if t.Composer != "" {
		cv.DrawString(x+10, y+50, "BY: "+t.Composer, composerColor.Fade(a), fontSmall)
	}
	if t.TrackNumber > 0 {
		cv.DrawString(x+10, y+65, fmt.Sprintf("#%d - %s", t.TrackNumber, t.Stage), stageColor.Fade(a), fontSmall)
	}
}

func (c *Context) drawMenu(cv *render.Canvas) {
	items := c.Menu.Items()
	height := float32(menuTitle + 10 + len(items)*menuItemStep + 40)

	cv.FillRect(menuX, menuY, menuWidth, height, menuBgColor)
	cv.Border(menuX, menuY, menuWidth, height, 2, menuAccent)
	cv.FillRect(menuX, menuY, menuWidth, menuTitle, menuAccent)
	cv.DrawString(menuX+10, menuY+8, "SHOVEL KNIGHT MOD MENU", render.Black, fontLarge)

	y := float32(menuY + menuTitle + 10)
	for i, item := range items {
		color := render.White
		if i == c.Menu.Selected() {
			cv.FillRect(menuX+5, y, menuWidth-10, 25, highlightColor)
			color = render.Yellow
		}
		cv.DrawString(menuX+15, y+5, item.Text(), color, fontLarge)
		y += menuItemStep
	}
	cv.DrawString(menuX+10, menuY+height-25, "UP/DOWN: NAVIGATE | ENTER: TOGGLE | INSERT: CLOSE", render.Gray, 1)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
