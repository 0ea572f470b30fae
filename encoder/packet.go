package encoder

import (
	"bytes"
	"encoding/binary"

	"github.com/arloliu/v210/frame"
)

// Packet is one packed frame.
type Packet struct {
	// Data holds FrameSize bytes of v210.
	Data []byte
	// PTS is the presentation timestamp copied from the source frame.
	PTS int64
	// Key is always true; every v210 frame is independently decodable.
	Key bool
	// SideData holds the original PTS followed by the pass-through metadata
	// of the source frame, in frame order.
	SideData []frame.SideData

	release func([]byte)
}

func newPacket(data []byte, f *frame.Frame, alloc Allocator) *Packet {
	p := &Packet{
		Data:     data,
		PTS:      f.PTS,
		Key:      true,
		SideData: make([]frame.SideData, 0, len(f.SideData)+1),
	}

	var pts [8]byte
	binary.LittleEndian.PutUint64(pts[:], uint64(f.PTS))
	p.SideData = append(p.SideData, frame.SideData{Type: frame.SideDataOrigPTS, Data: pts[:]})
	p.SideData = append(p.SideData, passThrough(f.SideData)...)

	if r, ok := alloc.(Releaser); ok {
		p.release = r.Release
	}

	return p
}

// passThrough copies the non-empty side data blocks whose type is carried
// from frames to packets. Block contents are not interpreted.
func passThrough(list []frame.SideData) []frame.SideData {
	var out []frame.SideData
	for _, sd := range list {
		if len(sd.Data) == 0 || !isPassThrough(sd.Type) {
			continue
		}
		out = append(out, frame.SideData{Type: sd.Type, Data: bytes.Clone(sd.Data)})
	}

	return out
}

func isPassThrough(t frame.SideDataType) bool {
	for _, pt := range frame.PassThroughTypes {
		if pt == t {
			return true
		}
	}

	return false
}

// Lookup returns the first side data block of type t.
func (p *Packet) Lookup(t frame.SideDataType) ([]byte, bool) {
	return frame.Lookup(p.SideData, t)
}

// OrigPTS returns the source PTS recorded in side data.
func (p *Packet) OrigPTS() (int64, bool) {
	b, ok := p.Lookup(frame.SideDataOrigPTS)
	if !ok || len(b) != 8 {
		return 0, false
	}

	return int64(binary.LittleEndian.Uint64(b)), true
}

// Release hands Data back to the allocator that produced it, if that
// allocator recycles buffers. The packet must not be used afterwards.
func (p *Packet) Release() {
	if p.release != nil && p.Data != nil {
		p.release(p.Data)
	}
	p.Data = nil
	p.release = nil
}
