package tilemap

import (
	"fmt"
	"strings"

	"github.com/milk9111/lazycat/coords"
)

// Tag gives a tile gameplay meaning beyond its sprite.
type Tag uint8

const (
	TagNone Tag = iota
	TagWall
	TagDoor
	TagItem
	TagEnemy
	TagNPC
)

// Tags lists every real tag in declaration order.
var Tags = []Tag{TagWall, TagDoor, TagItem, TagEnemy, TagNPC}

func (t Tag) String() string {
	switch t {
	case TagNone:
		return "None"
	case TagWall:
		return "Wall"
	case TagDoor:
		return "Door"
	case TagItem:
		return "Item"
	case TagEnemy:
		return "Enemy"
	case TagNPC:
		return "NPC"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// ParseTag accepts the names String produces, case-insensitively.
func ParseTag(s string) (Tag, error) {
	for _, t := range append([]Tag{TagNone}, Tags...) {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return TagNone, fmt.Errorf("unknown tile tag %q", s)
}

// TileDescriptor is what a grid slot holds: the sprite sheet index (when one
// is painted), the slot's coordinates and an optional tag.
type TileDescriptor struct {
	TileIndex uint32
	HasIndex  bool
	Coords    coords.TileCoords
	Tag       Tag
}

// Blank is the descriptor of a slot nothing has been painted on.
func Blank(c coords.TileCoords) TileDescriptor {
	return TileDescriptor{Coords: c}
}

// Painted is a descriptor showing sprite index at c.
func Painted(index uint32, c coords.TileCoords, tag Tag) TileDescriptor {
	return TileDescriptor{TileIndex: index, HasIndex: true, Coords: c, Tag: tag}
}

func (d TileDescriptor) IsBlank() bool {
	return !d.HasIndex && d.Tag == TagNone
}

func (d TileDescriptor) String() string {
	idx := "none"
	if d.HasIndex {
		idx = fmt.Sprintf("%d", d.TileIndex)
	}
	return fmt.Sprintf("tile[%s] sprite=%s tag=%s", d.Coords, idx, d.Tag)
}
