package compute

import (
	"encoding/binary"
	"math"

	"github.com/born-ml/kernelcore/internal/errcode"
	"github.com/born-ml/kernelcore/internal/memory"
	"github.com/born-ml/kernelcore/internal/parallel"
	"github.com/born-ml/kernelcore/internal/tensor"
)

// uploadChunk bounds the host staging slice used for accelerator fills.
const uploadChunk = 1 << 20

func (c *Context) fillOnes(b *memory.Buffer) error {
	n := b.Size()
	if b.DeviceType() == tensor.Host {
		return fillHostOnes(b.Memory(), b.DataType(), n, c.fill)
	}

	dev, err := c.acquire()
	if err != nil {
		return err
	}
	elem := b.DataType().Size()
	pattern := onesPattern(b.DataType(), min(n, uploadChunk/elem))
	for off := 0; off < n*elem; off += len(pattern) {
		chunk := pattern[:min(len(pattern), n*elem-off)]
		if err := dev.Write(b.Memory(), off, chunk); err != nil {
			return errcode.Wrap(errcode.AcceleratorRuntime, err, "uploading ones")
		}
	}
	return nil
}

func fillHostOnes(m tensor.Memory, dt tensor.DataType, n int, cfg parallel.Config) error {
	switch dt {
	case tensor.Char:
		setOnes(tensor.View[int8](m, n), cfg)
	case tensor.Float:
		setOnes(tensor.View[float32](m, n), cfg)
	case tensor.Double:
		setOnes(tensor.View[float64](m, n), cfg)
	default:
		return errcode.New(errcode.IllegalArgument, "fill: unknown data type %d", int(dt))
	}
	return nil
}

func setOnes[T tensor.Element](dst []T, cfg parallel.Config) {
	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = 1
		}
	}, cfg)
}

// onesPattern encodes n ones of dt in little-endian byte order.
func onesPattern(dt tensor.DataType, n int) []byte {
	out := make([]byte, n*dt.Size())
	switch dt {
	case tensor.Char:
		for i := range out {
			out[i] = 1
		}
	case tensor.Float:
		for i := 0; i < len(out); i += 4 {
			binary.LittleEndian.PutUint32(out[i:], math.Float32bits(1))
		}
	case tensor.Double:
		for i := 0; i < len(out); i += 8 {
			binary.LittleEndian.PutUint64(out[i:], math.Float64bits(1))
		}
	}
	return out
}
