package testutil

// Well-known positions used across packages.
const (
	InitialFEN   = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	KiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	EnPassantFEN = "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"
	PromotionFEN = "1n5k/P7/8/8/8/8/8/7K w - - 0 1"
	KingsOnlyFEN = "4k3/8/8/8/8/8/8/4K3 w - - 0 1"
)

// PerftCase is a position with known leaf counts; Nodes[i] is the count
// at depth i+1.
type PerftCase struct {
	Name  string
	FEN   string
	Nodes []uint64
}

// PerftCases lists the reference perft counts.
var PerftCases = []PerftCase{
	{Name: "initial", FEN: InitialFEN, Nodes: []uint64{20, 400, 8902}},
	{Name: "kiwipete", FEN: KiwipeteFEN, Nodes: []uint64{48, 2039}},
	{Name: "en passant", FEN: EnPassantFEN, Nodes: []uint64{5, 19}},
	{Name: "promotion", FEN: PromotionFEN, Nodes: []uint64{11}},
}

// ScholarsMate is 1.e4 e5 2.Bc4 Nc6 3.Qh5 Nf6 4.Qxf7# in long algebraic form.
var ScholarsMate = []string{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7"}
