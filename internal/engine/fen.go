package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chessboy-go/internal/chess"
	"github.com/lgbarn/chessboy-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN field names used in parse errors.
const (
	FieldCount     = "field count"
	FieldPlacement = "piece placement"
	FieldSide      = "side to move"
	FieldCastling  = "castling"
	FieldEnPassant = "en passant"
	FieldHalfmove  = "halfmove clock"
	FieldFullmove  = "fullmove number"
)

// parseError builds an *errors.ParseError.
func parseError(field, value, format string, args ...interface{}) error {
	return &errors.ParseError{Field: field, Value: value, Detail: fmt.Sprintf(format, args...)}
}

// Decode creates a game from a FEN string. The position becomes the start
// of the game's history. Malformed input yields an *errors.ParseError.
func Decode(fen string) (*GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, parseError(FieldCount, fen, "expected 6 fields, got %d", len(parts))
	}

	pos := Position{EnPassant: chess.NoSquare}

	if err := parsePiecePositions(&pos.Board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(&pos, parts[1]); err != nil {
		return nil, err
	}
	if kingAttacked(&pos.Board, pos.SideToMove.Opposite()) {
		return nil, parseError(FieldPlacement, parts[0], "%s king is in check with %s to move", pos.SideToMove.Opposite(), pos.SideToMove)
	}
	if err := parseCastlingRights(&pos, parts[2]); err != nil {
		return nil, err
	}
	if err := parseEnPassant(&pos, parts[3]); err != nil {
		return nil, err
	}
	if err := parseClocks(&pos, parts[4], parts[5]); err != nil {
		return nil, err
	}

	return newGameState(pos), nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return parseError(FieldPlacement, positions, "expected %d ranks, got %d", chess.BoardSize, len(ranks))
	}

	kings := map[chess.Colour]int{}
	for i, text := range ranks {
		rank := chess.Rank(chess.LastRank - i)
		col := chess.Col(chess.FirstCol)

		for _, c := range text {
			switch {
			case c >= '1' && c <= '8':
				col += chess.Col(c - '0')
				if col > chess.LastCol+1 {
					return parseError(FieldPlacement, text, "rank %c has more than 8 squares", rank)
				}
			default:
				piece := chess.PieceFromLetter(byte(c))
				if piece == chess.Empty || c > 'z' {
					return parseError(FieldPlacement, text, "invalid piece character %q", c)
				}
				if col > chess.LastCol {
					return parseError(FieldPlacement, text, "rank %c has more than 8 squares", rank)
				}

				colour := chess.White
				if c >= 'a' {
					colour = chess.Black
				}
				if piece == chess.Pawn && (rank == chess.FirstRank || rank == chess.LastRank) {
					return parseError(FieldPlacement, text, "pawn on back rank %c", rank)
				}
				if piece == chess.King {
					kings[colour]++
				}

				board.Set(col, rank, chess.MakeColouredPiece(colour, piece))
				col++
			}
		}
		if col != chess.LastCol+1 {
			return parseError(FieldPlacement, text, "rank %c covers %d squares, want 8", rank, int(col-chess.FirstCol))
		}
	}

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if kings[colour] != 1 {
			return parseError(FieldPlacement, positions, "%s has %d kings, want 1", colour, kings[colour])
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(pos *Position, field string) error {
	switch field {
	case "w":
		pos.SideToMove = chess.White
	case "b":
		pos.SideToMove = chess.Black
	default:
		return parseError(FieldSide, field, "expected w or b")
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(pos *Position, field string) error {
	if field == "-" {
		return nil
	}
	for _, c := range field {
		var right *bool
		switch c {
		case 'K':
			right = &pos.Castling.WhiteKingSide
		case 'Q':
			right = &pos.Castling.WhiteQueenSide
		case 'k':
			right = &pos.Castling.BlackKingSide
		case 'q':
			right = &pos.Castling.BlackQueenSide
		default:
			return parseError(FieldCastling, field, "invalid castling character %q", c)
		}
		if *right {
			return parseError(FieldCastling, field, "repeated castling character %q", c)
		}
		*right = true
	}
	return nil
}

// parseEnPassant parses the en passant target square field. The target
// must sit behind a pawn that has just made a double step, so it is on
// rank 3 when black is to move and rank 6 when white is.
func parseEnPassant(pos *Position, field string) error {
	if field == "-" {
		return nil
	}
	sq, ok := chess.ParseSquare(field)
	if !ok {
		return parseError(FieldEnPassant, field, "not a square")
	}
	want := chess.Rank('6')
	if pos.SideToMove == chess.Black {
		want = '3'
	}
	if sq.Rank() != want {
		return parseError(FieldEnPassant, field, "target must be on rank %c", want)
	}
	pos.EnPassant = sq
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(pos *Position, halfmove, fullmove string) error {
	h, err := strconv.Atoi(halfmove)
	if err != nil || h < 0 {
		return parseError(FieldHalfmove, halfmove, "expected a non-negative integer")
	}
	f, err := strconv.Atoi(fullmove)
	if err != nil || f < 1 {
		return parseError(FieldFullmove, fullmove, "expected a positive integer")
	}
	pos.HalfmoveClock = h
	pos.FullmoveNumber = f
	return nil
}

// Encode converts a game's current position to a FEN string.
func Encode(state *GameState) string {
	return state.Position.FEN()
}

// FEN converts a position to a FEN string.
func (p *Position) FEN() string {
	var sb strings.Builder

	writePiecePositions(&sb, &p.Board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, p.SideToMove)
	sb.WriteByte(' ')
	sb.WriteString(p.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock, p.FullmoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.Rank('8'); rank >= '1'; rank-- {
		emptyCount := 0
		for col := chess.Col('a'); col <= 'h'; col++ {
			piece := board.Get(col, rank)
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.FENLetter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > '1' {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, colour chess.Colour) {
	if colour == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}
