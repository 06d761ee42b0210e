package device

import (
	"errors"
	"io"
	"testing"

	"github.com/itohio/duraplot/pkg/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunk is one scripted result of a Read call.
type chunk struct {
	data []byte
	err  error
}

// scriptedReader replays chunks and then reports timeouts (0, nil),
// which is what go.bug.st/serial does when the read timeout expires.
type scriptedReader struct {
	chunks []chunk
}

func (r *scriptedReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, nil
	}
	c := r.chunks[0]
	n := copy(p, c.data)
	if n < len(c.data) {
		r.chunks[0].data = c.data[n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, c.err
}

func TestReadFrame(t *testing.T) {
	errBroken := errors.New("broken pipe")

	tests := []struct {
		name    string
		chunks  []chunk
		want    sample.Frame
		wantErr error
	}{
		{
			name:   "whole frame in one read",
			chunks: []chunk{{data: []byte{0xFF, 0x03}}},
			want:   sample.Frame{0xFF, 0x03},
		},
		{
			name:   "frame split across two reads",
			chunks: []chunk{{data: []byte{0x10}}, {data: []byte{0x02}}},
			want:   sample.Frame{0x10, 0x02},
		},
		{
			name:    "nothing arrives",
			chunks:  nil,
			wantErr: ErrTimeout,
		},
		{
			name:    "second byte never arrives",
			chunks:  []chunk{{data: []byte{0x10}}},
			wantErr: ErrPartialFrame,
		},
		{
			name:    "device error",
			chunks:  []chunk{{err: errBroken}},
			wantErr: errBroken,
		},
		{
			name:    "eof",
			chunks:  []chunk{{err: io.EOF}},
			wantErr: io.EOF,
		},
		{
			name:   "data with error completes the frame",
			chunks: []chunk{{data: []byte{0x01, 0x00}, err: io.EOF}},
			want:   sample.Frame{0x01, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f sample.Frame
			err := readFrame(&scriptedReader{chunks: tt.chunks}, &f)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestReadFrame_ReadsOnlyOneFrame(t *testing.T) {
	r := &scriptedReader{chunks: []chunk{{data: []byte{10, 0, 20, 0, 30, 0}}}}

	var got []sample.Sample
	for range 3 {
		var f sample.Frame
		require.NoError(t, readFrame(r, &f))
		got = append(got, sample.Decode(f))
	}

	assert.Equal(t, []sample.Sample{10, 20, 30}, got)
}
