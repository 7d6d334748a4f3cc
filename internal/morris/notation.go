package morris

import (
	"errors"
	"strconv"
	"strings"
)

// 文本记谱："<24 个 W/B/.> <w|b> <turn> <P|M|R>"
// 例如开局："........................ w 0 P"

var ErrInvalidNotation = errors.New("invalid notation")

var phaseLetters = [...]byte{Placing: 'P', Moving: 'M', Removing: 'R'}

func (b *BoardState) Encode() string {
	var sb strings.Builder
	sb.Grow(NumPositions + 8)
	for pos := 0; pos < NumPositions; pos++ {
		switch b.At(pos) {
		case White:
			sb.WriteByte('W')
		case Black:
			sb.WriteByte('B')
		default:
			sb.WriteByte('.')
		}
	}
	sb.WriteByte(' ')
	if b.Player == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.Turn))
	sb.WriteByte(' ')
	if b.Phase >= Placing && b.Phase <= Removing {
		sb.WriteByte(phaseLetters[b.Phase])
	} else {
		sb.WriteByte('?')
	}
	return sb.String()
}

func (b *BoardState) String() string {
	return b.Encode()
}

// Decode 解析 Encode 的输出
func Decode(s string) (*BoardState, error) {
	parts := strings.Fields(s)
	if len(parts) != 4 {
		return nil, ErrInvalidNotation
	}
	if len(parts[0]) != NumPositions {
		return nil, ErrInvalidNotation
	}
	b := NewBoardState()
	for pos, ch := range parts[0] {
		switch ch {
		case 'W', 'w':
			b.Stones[White][pos] = true
		case 'B', 'b':
			b.Stones[Black][pos] = true
		case '.':
		default:
			return nil, ErrInvalidNotation
		}
	}
	switch parts[1] {
	case "w":
		b.Player = White
	case "b":
		b.Player = Black
	default:
		return nil, ErrInvalidNotation
	}
	turn, err := strconv.Atoi(parts[2])
	if err != nil || turn < 0 {
		return nil, ErrInvalidNotation
	}
	b.Turn = turn
	switch parts[3] {
	case "P":
		b.Phase = Placing
	case "M":
		b.Phase = Moving
	case "R":
		b.Phase = Removing
	default:
		return nil, ErrInvalidNotation
	}
	return b, nil
}

// MustDecode 测试和工具里用
func MustDecode(s string) *BoardState {
	b, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return b
}
