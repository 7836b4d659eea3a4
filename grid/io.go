package grid

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Precision is the type a grid's cells are stored as.
type Precision int

const (
	Int32 Precision = iota
	Float32
	Float64
)

// ParsePrecision converts a name ("int", "float", or "double") to a
// Precision.
func ParsePrecision(name string) (Precision, error) {
	switch name {
	case "int":
		return Int32, nil
	case "float":
		return Float32, nil
	case "double":
		return Float64, nil
	}
	return 0, fmt.Errorf(
		"Precision '%s' not recognized. Accepted values are 'int', 'float' "+
			"and 'double'.", name,
	)
}

// Bytes returns the size of a single cell.
func (p Precision) Bytes() int {
	if p == Float64 {
		return 8
	}
	return 4
}

func (p Precision) String() string {
	switch p {
	case Int32:
		return "int"
	case Float32:
		return "float"
	case Float64:
		return "double"
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

// SizeError is returned when a grid file's size doesn't match its declared
// dimensions.
type SizeError struct {
	Path             string
	Expected, Actual int64
}

func (err *SizeError) Error() string {
	return fmt.Sprintf(
		"The size of file %s is %d bytes whereas we expected it to be %d bytes.",
		err.Path, err.Actual, err.Expected,
	)
}

// Read reads a grid with n cells on a side from the given file. The file's
// size must be exactly n^3 cells of the given precision.
func Read(
	path string, n int, prec Precision, order binary.ByteOrder,
) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("Grid size must be positive, but is %d.", n)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	cells := n * n * n
	expected := int64(cells) * int64(prec.Bytes())
	if info.Size() != expected {
		return nil, &SizeError{path, expected, info.Size()}
	}

	out := make([]float64, cells)
	switch prec {
	case Int32:
		buf := make([]int32, cells)
		if err := binary.Read(f, order, buf); err != nil {
			return nil, err
		}
		for i := range buf {
			out[i] = float64(buf[i])
		}
	case Float32:
		buf := make([]float32, cells)
		if err := binary.Read(f, order, buf); err != nil {
			return nil, err
		}
		for i := range buf {
			out[i] = float64(buf[i])
		}
	case Float64:
		if err := binary.Read(f, order, out); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("Unknown precision %s.", prec)
	}

	return out, nil
}

// Write writes vals to the given file at the given precision.
func Write(
	path string, vals []float64, prec Precision, order binary.ByteOrder,
) (err error) {
	var data interface{}
	switch prec {
	case Int32:
		buf := make([]int32, len(vals))
		for i := range vals {
			buf[i] = int32(vals[i])
		}
		data = buf
	case Float32:
		buf := make([]float32, len(vals))
		for i := range vals {
			buf[i] = float32(vals[i])
		}
		data = buf
	case Float64:
		data = vals
	default:
		return fmt.Errorf("Unknown precision %s.", prec)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return binary.Write(f, order, data)
}
