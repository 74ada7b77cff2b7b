package main

import (
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/lazycat/editor"
	"github.com/milk9111/lazycat/layout"
	"github.com/milk9111/lazycat/sprites"
	"github.com/milk9111/lazycat/tilemap"
)

// uiActions are the editor operations the widgets trigger.
type uiActions struct {
	NewMap        func()
	OpenMap       func()
	SaveMap       func()
	Rename        func(name string)
	SelectTile    func(index uint32)
	SelectTag     func(tag tilemap.Tag)
	PickTileSet   func()
	ConfirmNewMap func(name string)
	CancelNewMap  func()
}

// EditorUI owns the ebitenui tree and mirrors session state into it.
type EditorUI struct {
	UI *ebitenui.UI

	face    *text.Face
	theme   *widget.Theme
	actions uiActions

	nameInput    *widget.TextInput
	idLabel      *widget.Text
	tileSetLabel *widget.Text
	statusLabel  *widget.Text

	palette      *widget.Container
	paletteGrid  *widget.Container
	paletteCells map[uint32]*widget.Graphic
	tagGroup     *widget.RadioGroup
	tagButtons   map[tilemap.Tag]*widget.Button

	dialog *newMapDialog

	shownID string
}

type newMapDialog struct {
	Overlay    *widget.Container
	nameInput  *widget.TextInput
	fileLabel  *widget.Text
	errorLabel *widget.Text
}

func buildEditorUI(l layout.Layout, actions uiActions) *EditorUI {
	face := newEditorFace(12)
	theme := newEditorTheme(face)
	u := &EditorUI{
		face:         face,
		theme:        theme,
		actions:      actions,
		paletteCells: map[uint32]*widget.Graphic{},
		tagButtons:   map[tilemap.Tag]*widget.Button{},
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(u.buildTopBar(l))
	root.AddChild(u.buildSidePanel(l))

	u.dialog = u.buildNewMapDialog()
	root.AddChild(u.dialog.Overlay)

	u.UI = &ebitenui.UI{Container: root, PrimaryTheme: theme}
	return u
}

func (u *EditorUI) buildTopBar(l layout.Layout) *widget.Container {
	bar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(int(l.Viewport.W), int(l.TopMargin)),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchHorizontal:  true,
			}),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(2),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(3)),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(barColor)),
	)

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	buttons.AddChild(newButton(u.theme, "new map", 64, 22, u.actions.NewMap))
	buttons.AddChild(newButton(u.theme, "save map", 64, 22, u.actions.SaveMap))
	buttons.AddChild(newButton(u.theme, "load map", 64, 22, u.actions.OpenMap))
	buttons.AddChild(newButton(u.theme, "tile set", 64, 22, u.actions.PickTileSet))

	u.nameInput = newTextInput(u.face, 160, 22,
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			if u.actions.Rename != nil {
				u.actions.Rename(args.InputText)
			}
		}),
	)
	buttons.AddChild(u.nameInput)
	bar.AddChild(buttons)

	info := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(12),
			),
		),
	)
	u.idLabel = widget.NewText(widget.TextOpts.Text("map id:", u.face, color.Black))
	u.tileSetLabel = widget.NewText(widget.TextOpts.Text("tile set:", u.face, color.Black))
	info.AddChild(u.idLabel)
	info.AddChild(u.tileSetLabel)
	bar.AddChild(info)
	return bar
}

func (u *EditorUI) buildSidePanel(l layout.Layout) *widget.Container {
	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(int(l.SideMargin), int(l.Viewport.H-l.TopMargin)),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(6)),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
	)

	panel.AddChild(widget.NewLabel(widget.LabelOpts.Text("tiles", u.face, panelLabel)))
	u.palette = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	panel.AddChild(u.palette)

	panel.AddChild(widget.NewLabel(widget.LabelOpts.Text("tag", u.face, panelLabel)))
	tags := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(3),
				widget.GridLayoutOpts.Spacing(4, 4),
			),
		),
	)
	all := append([]tilemap.Tag{tilemap.TagNone}, tilemap.Tags...)
	elements := make([]widget.RadioGroupElement, 0, len(all))
	for _, tag := range all {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(u.theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(tag.String(), u.face, u.theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(54, 20),
			),
		)
		u.tagButtons[tag] = btn
		elements = append(elements, btn)
		tags.AddChild(btn)
	}
	u.tagGroup = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if u.actions.SelectTag == nil {
				return
			}
			for tag, b := range u.tagButtons {
				if args.Active == b {
					u.actions.SelectTag(tag)
					return
				}
			}
		}),
	)
	panel.AddChild(tags)

	u.statusLabel = widget.NewText(widget.TextOpts.Text("", u.face, color.White))
	panel.AddChild(u.statusLabel)
	return panel
}

func (u *EditorUI) buildNewMapDialog() *newMapDialog {
	d := &newMapDialog{}
	d.Overlay = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{0, 0, 0, 160})),
	)
	d.Overlay.GetWidget().Visibility = widget.Visibility_Hide

	box := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(300, 160),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 220, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(10)),
			),
		),
	)

	box.AddChild(widget.NewLabel(widget.LabelOpts.Text("New map", u.face, labelColor)))
	d.nameInput = newTextInput(u.face, 260, 24,
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			if u.actions.ConfirmNewMap != nil {
				u.actions.ConfirmNewMap(args.InputText)
			}
		}),
	)
	box.AddChild(d.nameInput)

	fileRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	fileRow.AddChild(newButton(u.theme, "select file", 80, 24, u.actions.PickTileSet))
	d.fileLabel = widget.NewText(widget.TextOpts.Text("", u.face, color.Black))
	fileRow.AddChild(d.fileLabel)
	box.AddChild(fileRow)

	d.errorLabel = widget.NewText(widget.TextOpts.Text("", u.face, errorTextColor))
	box.AddChild(d.errorLabel)

	buttonsRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	buttonsRow.AddChild(newButton(u.theme, "new map", 80, 24, func() {
		if u.actions.ConfirmNewMap != nil {
			u.actions.ConfirmNewMap(d.nameInput.GetText())
		}
	}))
	buttonsRow.AddChild(newButton(u.theme, "cancel", 80, 24, u.actions.CancelNewMap))
	box.AddChild(buttonsRow)

	d.Overlay.AddChild(box)
	return d
}

// SetPalette replaces the tile buttons with one graphic per sprite of sheet.
func (u *EditorUI) SetPalette(sheet *sprites.Sheet) {
	if u.paletteGrid != nil {
		u.palette.RemoveChild(u.paletteGrid)
		u.paletteGrid = nil
	}
	u.paletteCells = map[uint32]*widget.Graphic{}
	if sheet == nil || sheet.Count() == 0 {
		return
	}
	tileW, tileH := sheet.TileSize()
	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(sheet.Cols()),
				widget.GridLayoutOpts.Spacing(2, 2),
			),
		),
	)
	for i := uint32(0); i < sheet.Count(); i++ {
		cell := sheet.Cell(i)
		if cell == nil {
			continue
		}
		idx := i
		g := widget.NewGraphic(
			widget.GraphicOpts.Image(cell),
			widget.GraphicOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(tileW, tileH),
				widget.WidgetOpts.MouseButtonClickedHandler(func(args *widget.WidgetMouseButtonClickedEventArgs) {
					if u.actions.SelectTile != nil {
						u.actions.SelectTile(idx)
					}
				}),
			),
		)
		u.paletteCells[idx] = g
		grid.AddChild(g)
	}
	u.palette.AddChild(grid)
	u.paletteGrid = grid
}

// SelectedCellRect is the screen rectangle of the palette entry for index.
func (u *EditorUI) SelectedCellRect(index uint32) (image.Rectangle, bool) {
	g, ok := u.paletteCells[index]
	if !ok {
		return image.Rectangle{}, false
	}
	return g.GetWidget().Rect, true
}

// Sync copies session state into the widgets.
func (u *EditorUI) Sync(s *editor.Session) {
	m := s.CurrentMap
	id := m.ID().String()
	if id != u.shownID {
		u.shownID = id
		u.nameInput.SetText(m.Name())
		u.idLabel.Label = "map id: " + id
		if b, ok := u.tagButtons[s.SelectedTag]; ok {
			u.tagGroup.SetActive(b)
		}
	}
	u.tileSetLabel.Label = "tile set: " + m.TileSet()

	switch {
	case s.Err != nil:
		u.statusLabel.Label = s.Err.Error()
	default:
		u.statusLabel.Label = s.Status
	}

	overlay := u.dialog.Overlay.GetWidget()
	if s.Dialog.Open {
		if overlay.Visibility != widget.Visibility_Show {
			u.dialog.nameInput.SetText("")
			u.dialog.nameInput.Focus(true)
		}
		overlay.Visibility = widget.Visibility_Show
	} else {
		overlay.Visibility = widget.Visibility_Hide
	}
	u.dialog.fileLabel.Label = s.Dialog.ChosenFile
	if s.Dialog.Pending() {
		u.dialog.fileLabel.Label = "choosing..."
	}
	u.dialog.errorLabel.Label = dialogMessage(s.Dialog.ErrorMessage)
}

// dialogMessage is the text the new-map dialog shows for a session message.
func dialogMessage(msg string) string {
	if msg == editor.ErrNoTileSet.Error() {
		return "No valid file was chosen!"
	}
	return msg
}

// Typing reports whether a text input has focus, so hotkeys stay quiet.
func (u *EditorUI) Typing() bool {
	if fw := u.UI.GetFocusedWidget(); fw != nil {
		switch fw.(type) {
		case *widget.TextInput:
			return true
		}
	}
	return false
}

func (u *EditorUI) Update() { u.UI.Update() }

func (u *EditorUI) Draw(screen *ebiten.Image) { u.UI.Draw(screen) }
