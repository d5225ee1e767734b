package snapshot_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/shelf/internal/snapshot"
)

func write(t *testing.T, payload []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, snapshot.Write(&buf, payload))

	return buf.Bytes()
}

func Test_Read_Returns_Payload_Written_By_Write(t *testing.T) {
	t.Parallel()

	payload := []byte(strings.Repeat(`{"title": "Война и мир", "year": 1869}`+"\n", 200))

	data := write(t, payload)
	assert.Less(t, len(data), len(payload), "payload should compress")
	assert.Equal(t, "SHELFBAK", string(data[:8]))

	got, err := snapshot.Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func Test_Read_Rejects_Damaged_Input(t *testing.T) {
	t.Parallel()

	valid := write(t, []byte(`[{"id": 1}]`))

	testCases := []struct {
		name    string
		mutate  func(data []byte) []byte
		wantErr []error
	}{
		{
			name:    "Empty",
			mutate:  func([]byte) []byte { return nil },
			wantErr: []error{snapshot.ErrBadMagic},
		},
		{
			name:    "PlainJSON",
			mutate:  func([]byte) []byte { return []byte(`[{"id": 1}]`) },
			wantErr: []error{snapshot.ErrBadMagic},
		},
		{
			name:    "TruncatedHeader",
			mutate:  func(data []byte) []byte { return data[:12] },
			wantErr: []error{snapshot.ErrTruncated},
		},
		{
			name: "FutureVersion",
			mutate: func(data []byte) []byte {
				data[8] = 9
				return data
			},
			wantErr: []error{snapshot.ErrUnsupportedVersion},
		},
		{
			name: "WrongChecksum",
			mutate: func(data []byte) []byte {
				data[9] ^= 0xff
				return data
			},
			wantErr: []error{snapshot.ErrChecksum},
		},
		{
			name: "CorruptBody",
			mutate: func(data []byte) []byte {
				data[len(data)-1] ^= 0xff
				return data
			},
			wantErr: []error{snapshot.ErrDecompress, snapshot.ErrChecksum},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			data := testCase.mutate(bytes.Clone(valid))

			_, err := snapshot.Read(bytes.NewReader(data))
			require.Error(t, err)

			matched := false
			for _, want := range testCase.wantErr {
				matched = matched || errors.Is(err, want)
			}

			assert.True(t, matched, "unexpected error: %v", err)
		})
	}
}
