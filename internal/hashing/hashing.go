// Package hashing provides Zobrist position keys for repetition detection.
package hashing

import (
	"github.com/lgbarn/chessboy-go/internal/chess"
)

// Castling right bits as passed to GenerateZobristHash.
const (
	WhiteKingSide uint8 = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

// zobristTable holds one random value per piece/square, side, castling
// combination and en passant file.
type zobristTable struct {
	pieces      [2][chess.King + 1][chess.NumSquares]uint64
	blackToMove uint64
	castling    [16]uint64
	enPassant   [chess.BoardSize]uint64
}

// zobristSeed fixes the table so keys are stable across runs.
const zobristSeed uint64 = 0x9E3779B97F4A7C15

var table = newZobristTable(zobristSeed)

// newZobristTable fills a table from a splitmix64 sequence.
func newZobristTable(seed uint64) *zobristTable {
	state := seed
	next := func() uint64 {
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}

	t := &zobristTable{}
	for colour := range t.pieces {
		for piece := chess.Pawn; piece <= chess.King; piece++ {
			for sq := range t.pieces[colour][piece] {
				t.pieces[colour][piece][sq] = next()
			}
		}
	}
	t.blackToMove = next()
	for i := range t.castling {
		t.castling[i] = next()
	}
	for i := range t.enPassant {
		t.enPassant[i] = next()
	}
	return t
}

// GenerateZobristHash returns the key of a position: piece placement,
// side to move, castling rights and en passant target. Two positions
// that share all four get the same key.
func GenerateZobristHash(board *chess.Board, toMove chess.Colour, castling uint8, enPassant chess.Square) uint64 {
	var hash uint64
	for sq, piece := range board.Squares {
		if piece == chess.Empty {
			continue
		}
		pieceType := chess.ExtractPiece(piece)
		if pieceType < chess.Pawn || pieceType > chess.King {
			continue
		}
		hash ^= table.pieces[chess.ExtractColour(piece)][pieceType][sq]
	}
	if toMove == chess.Black {
		hash ^= table.blackToMove
	}
	hash ^= table.castling[castling&0x0f]
	if enPassant.Valid() {
		hash ^= table.enPassant[enPassant.File()]
	}
	return hash
}
