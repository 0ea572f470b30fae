package frame

import "bytes"

// SideDataType tags a metadata block attached to a frame or packet.
type SideDataType uint8

const (
	SideDataA53CC           SideDataType = 0x1 // ATSC A/53 closed captions
	SideDataAFD             SideDataType = 0x2 // active format description
	SideDataBarData         SideDataType = 0x3 // letterbox/pillarbox bar data
	SideDataPipelineStats   SideDataType = 0x4 // upstream pipeline statistics
	SideDataSEIUnregistered SideDataType = 0x5 // user data unregistered SEI payload
	SideDataOrigPTS         SideDataType = 0x6 // packet only: source PTS as little-endian int64
)

// PassThroughTypes lists the side data kinds an encoder copies from a frame to
// its packet.
var PassThroughTypes = []SideDataType{
	SideDataA53CC,
	SideDataAFD,
	SideDataBarData,
	SideDataPipelineStats,
	SideDataSEIUnregistered,
}

func (t SideDataType) String() string {
	switch t {
	case SideDataA53CC:
		return "A53 Closed Captions"
	case SideDataAFD:
		return "Active Format Description"
	case SideDataBarData:
		return "Bar Data"
	case SideDataPipelineStats:
		return "Pipeline Stats"
	case SideDataSEIUnregistered:
		return "SEI Unregistered"
	case SideDataOrigPTS:
		return "Original PTS"
	default:
		return "Unknown"
	}
}

// SideData is an opaque metadata block.
type SideData struct {
	Type SideDataType
	Data []byte
}

// AddSideData attaches a copy of data to the frame.
func (f *Frame) AddSideData(t SideDataType, data []byte) {
	f.SideData = append(f.SideData, SideData{Type: t, Data: bytes.Clone(data)})
}

// Lookup returns the first side data block of type t.
func Lookup(list []SideData, t SideDataType) ([]byte, bool) {
	for _, sd := range list {
		if sd.Type == t {
			return sd.Data, true
		}
	}

	return nil, false
}
