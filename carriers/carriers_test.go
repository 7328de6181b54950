package carriers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "Southwest Airlines", Name("WN"))
	assert.Equal(t, "Southwest Airlines", Name(" wn "))
	assert.Equal(t, "ZZ", Name("zz"))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "DL - Delta Air Lines", Display("dl"))
	assert.Equal(t, "ZZ", Display("ZZ"))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("9E"))
	assert.False(t, Known("ZZ"))
	assert.False(t, Known(""))
}

func TestAllSorted(t *testing.T) {
	all := All()
	assert.Len(t, all, 15)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1], all[i])
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "WN", []string{"WN"}},
		{"commas", "wn,dl,aa", []string{"WN", "DL", "AA"}},
		{"mixed separators", "WN; DL|UA aa", []string{"WN", "DL", "UA", "AA"}},
		{"duplicates", "WN,wn,WN", []string{"WN"}},
		{"invalid tokens dropped", "WN,TOOLONG,!,D", []string{"WN"}},
		{"all invalid", "TOOLONG,???", nil},
		{"digit code", "9e", []string{"9E"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFilter(tt.raw))
		})
	}
}
