package probability

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/behrlich/thaipoker/pkg/cards"
	"github.com/behrlich/thaipoker/pkg/combinatorics"
	"github.com/behrlich/thaipoker/pkg/handindex"
	"github.com/behrlich/thaipoker/pkg/thaierr"
)

const (
	magic   = "TTP0"
	version = uint32(1)
)

// Save writes the table to path in the TTP0.bin wire format: 4-byte
// magic, then four little-endian u32 header fields (version, bets,
// cards_plus_1, hands), then the int32 payload in bet-major,
// size-major, hand-minor order.
func (t *Table) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return thaierr.Wrap(thaierr.IOError, "create "+path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(magic); err != nil {
		return thaierr.Wrap(thaierr.IOError, "write magic", err)
	}
	header := []uint32{version, uint32(cards.NumBets), uint32(cardsPlus1), uint32(handindex.HandNB)}
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return thaierr.Wrap(thaierr.IOError, "write header", err)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, t.P); err != nil {
		return thaierr.Wrap(thaierr.IOError, "write payload", err)
	}
	if err := w.Flush(); err != nil {
		return thaierr.Wrap(thaierr.IOError, "flush", err)
	}
	return nil
}

// Load reads a table back from the TTP0.bin wire format written by
// Save, validating magic, version, and dimensions.
func Load(path string) (*Table, error) {
	idx, err := handindex.Get()
	if err != nil {
		return nil, err
	}
	cmb := combinatorics.Get()

	f, err := os.Open(path)
	if err != nil {
		return nil, thaierr.Wrap(thaierr.IOError, "open "+path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	gotMagic := make([]byte, 4)
	if _, err := io.ReadFull(r, gotMagic); err != nil {
		return nil, thaierr.Wrap(thaierr.IOError, "read magic", err)
	}
	if string(gotMagic) != magic {
		return nil, thaierr.Newf(thaierr.FormatError, "bad magic %q, want %q", gotMagic, magic)
	}

	var gotVersion, gotBets, gotCards, gotHands uint32
	for _, field := range []*uint32{&gotVersion, &gotBets, &gotCards, &gotHands} {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			return nil, thaierr.Wrap(thaierr.IOError, "read header", err)
		}
	}
	if gotVersion != version {
		return nil, thaierr.Newf(thaierr.VersionMismatch, "version %d, want %d", gotVersion, version)
	}
	if gotBets != uint32(cards.NumBets) || gotCards != uint32(cardsPlus1) || gotHands != uint32(handindex.HandNB) {
		return nil, thaierr.Newf(thaierr.DimensionMismatch,
			"dims bets=%d cards_plus_1=%d hands=%d, want %d/%d/%d",
			gotBets, gotCards, gotHands, cards.NumBets, cardsPlus1, handindex.HandNB)
	}

	payload := make([]int32, int(cards.NumBets)*cardsPlus1*handindex.HandNB)
	if err := binary.Read(r, binary.LittleEndian, payload); err != nil {
		return nil, thaierr.Wrap(thaierr.IOError, "read payload", err)
	}

	return &Table{idx: idx, cmb: cmb, P: payload}, nil
}
