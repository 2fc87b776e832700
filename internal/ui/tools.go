package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/MonishPuttu/DRAWIFY/internal/draw"
	"github.com/MonishPuttu/DRAWIFY/internal/export"
	"github.com/MonishPuttu/DRAWIFY/internal/shape"
)

// NewToolbar builds the tool picker, theme toggle and PDF export controls
// for one board.
func NewToolbar(board *BoardWidget, store *shape.Store) fyne.CanvasObject {
	tools := widget.NewRadioGroup([]string{"rect", "circle", "pencil", "eraser"}, func(selected string) {
		switch selected {
		case "rect":
			board.Engine().SetTool(draw.ToolRect)
		case "circle":
			board.Engine().SetTool(draw.ToolCircle)
		case "pencil":
			board.Engine().SetTool(draw.ToolPencil)
		case "eraser":
			board.Engine().SetTool(draw.ToolEraser)
		}
	})
	tools.Horizontal = true
	tools.SetSelected("circle")

	themeToggle := widget.NewCheck("light theme", func(light bool) {
		if light {
			board.Engine().SetTheme(draw.ThemeLight)
		} else {
			board.Engine().SetTheme(draw.ThemeDark)
		}
	})

	exportBtn := widget.NewButton("Export PDF", func() {
		if err := export.PDF("board.pdf", store); err != nil {
			log.Println("could not export board:", err)
		}
	})

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tools,
		widget.NewSeparator(),
		themeToggle,
		widget.NewSeparator(),
		exportBtn,
		layout.NewSpacer(),
	)
}
