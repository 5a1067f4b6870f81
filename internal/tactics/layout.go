package tactics

import (
	"errors"
	"strconv"
	"strings"
)

// Layout strings: one row per '/' segment, top row first.
// '#' obstacle, '+' cover, '.' open; runs of open tiles may be compressed
// as decimal counts ("3#4" == "...#....").

var ErrInvalidLayout = errors.New("invalid board layout")

// MaxBoardSide bounds both dimensions of boards built from layouts and level
// definitions.
const MaxBoardSide = 64

func (b *Board) Encode() string {
	var sb strings.Builder
	for y := 0; y < b.Height; y++ {
		if y > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for x := 0; x < b.Width; x++ {
			var ch byte
			switch {
			case b.HasObstacle(x, y):
				ch = '#'
			case b.HasCover(x, y):
				ch = '+'
			default:
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(ch)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	return sb.String()
}

func DecodeBoard(layout string) (*Board, error) {
	layout = strings.TrimSpace(layout)
	if layout == "" {
		return nil, ErrInvalidLayout
	}
	rows := strings.Split(layout, "/")
	if len(rows) > MaxBoardSide {
		return nil, ErrInvalidLayout
	}
	width := -1
	type cell struct {
		x, y  int
		cover bool
	}
	var cells []cell
	for y, row := range rows {
		x := 0
		num := 0
		for _, ch := range row {
			if ch >= '0' && ch <= '9' {
				num = num*10 + int(ch-'0')
				if x+num > MaxBoardSide {
					return nil, ErrInvalidLayout
				}
				continue
			}
			x += num
			num = 0
			switch ch {
			case '.':
			case '#':
				cells = append(cells, cell{x: x, y: y})
			case '+':
				cells = append(cells, cell{x: x, y: y, cover: true})
			default:
				return nil, ErrInvalidLayout
			}
			x++
			if x > MaxBoardSide {
				return nil, ErrInvalidLayout
			}
		}
		x += num
		if width == -1 {
			width = x
		}
		if x != width || width == 0 {
			return nil, ErrInvalidLayout
		}
	}
	b := NewBoard(width, len(rows))
	for _, c := range cells {
		if c.cover {
			b.AddCover(c.x, c.y)
		} else {
			b.AddObstacle(c.x, c.y)
		}
	}
	return b, nil
}
