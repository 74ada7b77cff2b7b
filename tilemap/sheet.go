package tilemap

// Sprite sheets are addressed linearly: index = col + row*stride, where the
// stride is the map's tile_rows value (the number of tiles across the sheet
// image, see SheetShape).

// DefaultSheetRows and DefaultSheetCols describe a 16x16 sheet.
const (
	DefaultSheetRows = 16
	DefaultSheetCols = 16
)

// SheetShape derives (tile_rows, tile_cols) from a sheet image: tile_rows is
// the number of tiles across the image, tile_cols the number down it.
func SheetShape(imgW, imgH, tileW, tileH int) (uint32, uint32) {
	if tileW <= 0 || tileH <= 0 || imgW < tileW || imgH < tileH {
		return 0, 0
	}
	return uint32(imgW / tileW), uint32(imgH / tileH)
}

// SpriteIndex is the linear index of the sheet cell at (row, col).
func (m *MapScreen) SpriteIndex(row, col uint32) uint32 {
	return col + row*m.tileRows
}

// SpriteCell inverts SpriteIndex.
func (m *MapScreen) SpriteCell(index uint32) (row, col uint32) {
	if m.tileRows == 0 {
		return 0, index
	}
	return index / m.tileRows, index % m.tileRows
}

// SpriteCount is the number of cells on the sheet.
func (m *MapScreen) SpriteCount() uint32 {
	return m.tileRows * m.tileCols
}
