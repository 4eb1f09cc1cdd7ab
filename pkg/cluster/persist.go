package cluster

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/behrlich/thaipoker/pkg/handindex"
	"github.com/behrlich/thaipoker/pkg/thaierr"
)

const (
	magic   = "HCL0"
	version = uint32(1)
)

// Save writes the cluster table to path in the HCL0.bin wire format:
// magic, version, the two dimension counts, then for every
// (own_size, opp_size) pair its blocks (each point's feature vector,
// hand index, and opp size), prefix sums, and centroids.
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
	header := []uint32{version, uint32(sizeClasses), uint32(oppClasses)}
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return thaierr.Wrap(thaierr.IOError, "write header", err)
		}
	}

	for ownSize := 0; ownSize < sizeClasses; ownSize++ {
		for oppSize := 0; oppSize < oppClasses; oppSize++ {
			b := t.buckets[ownSize][oppSize]
			if err := writeBucket(w, b); err != nil {
				return err
			}
		}
	}

	if err := w.Flush(); err != nil {
		return thaierr.Wrap(thaierr.IOError, "flush", err)
	}
	return nil
}

func writeBucket(w *bufio.Writer, b bucket) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(b.blocks))); err != nil {
		return thaierr.Wrap(thaierr.IOError, "write n_blocks", err)
	}
	for _, blk := range b.blocks {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(blk))); err != nil {
			return thaierr.Wrap(thaierr.IOError, "write n_points", err)
		}
		for _, p := range blk {
			if err := writePoint(w, p); err != nil {
				return err
			}
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(b.prefixSums))); err != nil {
		return thaierr.Wrap(thaierr.IOError, "write n_prefix", err)
	}
	prefix := make([]int32, len(b.prefixSums))
	for i, v := range b.prefixSums {
		prefix[i] = int32(v)
	}
	if err := binary.Write(w, binary.LittleEndian, prefix); err != nil {
		return thaierr.Wrap(thaierr.IOError, "write prefix", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(b.centers))); err != nil {
		return thaierr.Wrap(thaierr.IOError, "write n_centers", err)
	}
	for _, c := range b.centers {
		if err := writePoint(w, c); err != nil {
			return err
		}
	}
	return nil
}

func writePoint(w *bufio.Writer, p point) error {
	if err := binary.Write(w, binary.LittleEndian, p.feature); err != nil {
		return thaierr.Wrap(thaierr.IOError, "write point feature", err)
	}
	if err := binary.Write(w, binary.LittleEndian, p.hand); err != nil {
		return thaierr.Wrap(thaierr.IOError, "write point hand_ix", err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(p.oppSize)); err != nil {
		return thaierr.Wrap(thaierr.IOError, "write point opp_sz", err)
	}
	return nil
}

// Load reads a cluster table back from the HCL0.bin wire format
// written by Save, validating magic, version, and dimensions.
func Load(path string) (*Table, error) {
	idx, err := handindex.Get()
	if err != nil {
		return nil, err
	}

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

	var gotVersion, gotHandSizes, gotCardSizes uint32
	for _, field := range []*uint32{&gotVersion, &gotHandSizes, &gotCardSizes} {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			return nil, thaierr.Wrap(thaierr.IOError, "read header", err)
		}
	}
	if gotVersion != version {
		return nil, thaierr.Newf(thaierr.VersionMismatch, "version %d, want %d", gotVersion, version)
	}
	if gotHandSizes != uint32(sizeClasses) || gotCardSizes != uint32(oppClasses) {
		return nil, thaierr.Newf(thaierr.DimensionMismatch,
			"dims hand_sizes=%d card_sizes=%d, want %d/%d", gotHandSizes, gotCardSizes, sizeClasses, oppClasses)
	}

	t := &Table{idx: idx, k: DefaultK, iters: DefaultIters, sampleRng: newSampleRNG()}
	for ownSize := 0; ownSize < sizeClasses; ownSize++ {
		for oppSize := 0; oppSize < oppClasses; oppSize++ {
			b, err := readBucket(r)
			if err != nil {
				return nil, err
			}
			t.buckets[ownSize][oppSize] = b
		}
	}
	return t, nil
}

func readBucket(r *bufio.Reader) (bucket, error) {
	var nBlocks uint32
	if err := binary.Read(r, binary.LittleEndian, &nBlocks); err != nil {
		return bucket{}, thaierr.Wrap(thaierr.IOError, "read n_blocks", err)
	}
	blocks := make([][]point, nBlocks)
	for i := range blocks {
		var nPoints uint32
		if err := binary.Read(r, binary.LittleEndian, &nPoints); err != nil {
			return bucket{}, thaierr.Wrap(thaierr.IOError, "read n_points", err)
		}
		blk := make([]point, nPoints)
		for j := range blk {
			p, err := readPoint(r)
			if err != nil {
				return bucket{}, err
			}
			blk[j] = p
		}
		blocks[i] = blk
	}

	var nPrefix uint32
	if err := binary.Read(r, binary.LittleEndian, &nPrefix); err != nil {
		return bucket{}, thaierr.Wrap(thaierr.IOError, "read n_prefix", err)
	}
	prefixRaw := make([]int32, nPrefix)
	if err := binary.Read(r, binary.LittleEndian, prefixRaw); err != nil {
		return bucket{}, thaierr.Wrap(thaierr.IOError, "read prefix", err)
	}
	prefixSums := make([]int, nPrefix)
	for i, v := range prefixRaw {
		prefixSums[i] = int(v)
	}

	var nCenters uint32
	if err := binary.Read(r, binary.LittleEndian, &nCenters); err != nil {
		return bucket{}, thaierr.Wrap(thaierr.IOError, "read n_centers", err)
	}
	centers := make([]point, nCenters)
	for i := range centers {
		p, err := readPoint(r)
		if err != nil {
			return bucket{}, err
		}
		centers[i] = p
	}

	return bucket{blocks: blocks, prefixSums: prefixSums, centers: centers}, nil
}

func readPoint(r *bufio.Reader) (point, error) {
	var p point
	if err := binary.Read(r, binary.LittleEndian, &p.feature); err != nil {
		return point{}, thaierr.Wrap(thaierr.IOError, "read point feature", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &p.hand); err != nil {
		return point{}, thaierr.Wrap(thaierr.IOError, "read point hand_ix", err)
	}
	var oppSize int32
	if err := binary.Read(r, binary.LittleEndian, &oppSize); err != nil {
		return point{}, thaierr.Wrap(thaierr.IOError, "read point opp_sz", err)
	}
	p.oppSize = int(oppSize)
	return p, nil
}
