package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	type testCase struct {
		version string
		want    string
		wantErr bool
	}

	cases := []testCase{
		{version: "", want: "0.0.1-dev"},
		{version: "v1.2.3", want: "1.2.3"},
		{version: "1.2.3-rc1", want: "1.2.3-rc1"},
		{version: "nightly", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.version, func(t *testing.T) {
			old := Version
			t.Cleanup(func() { Version = old })
			Version = tc.version

			got, err := GetVersion()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStampRoundTrip(t *testing.T) {
	body := []byte("package p;\n\npublic final class Navigator {\n}\n")
	stamped, err := Stamp(body)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(stamped), "// Code generated by navgen "))
	assert.True(t, bytes.HasSuffix(stamped, body))

	recorded, got, err := SplitStamped(stamped)
	require.NoError(t, err)
	assert.Equal(t, Checksum(body), recorded)
	assert.Equal(t, body, got)

	intact, err := Intact(stamped)
	require.NoError(t, err)
	assert.True(t, intact)
}

func TestIntactDetectsEdits(t *testing.T) {
	stamped, err := Stamp([]byte("class A {}\n"))
	require.NoError(t, err)

	edited := bytes.Replace(stamped, []byte("class A"), []byte("class B"), 1)
	intact, err := Intact(edited)
	require.NoError(t, err)
	assert.False(t, intact)
}

func TestSplitStampedWithoutHeader(t *testing.T) {
	_, _, err := SplitStamped([]byte("package p;\nclass A {}\n"))
	assert.ErrorIs(t, err, ErrNoChecksum)

	_, _, err = SplitStamped([]byte("// Code generated by navgen 1.0.0. DO NOT EDIT.\nclass A {}\n"))
	assert.ErrorIs(t, err, ErrNoChecksum)
}

func TestChecksumIsStable(t *testing.T) {
	assert.Equal(t, Checksum([]byte("x")), Checksum([]byte("x")))
	assert.NotEqual(t, Checksum([]byte("x")), Checksum([]byte("y")))
	assert.Len(t, Checksum(nil), 64)
}
