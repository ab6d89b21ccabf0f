package catalog

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCuratedName(t *testing.T) {
	tests := []struct {
		nr   uint64
		want string
	}{
		{0, "read"},
		{1, "write"},
		{2, "open"},
		{3, "close"},
		{9, "mmap"},
		{11, "munmap"},
		{17, "pread64"},
		{32, "dup"},
		{33, "pipe"},
		{39, "getpid"},
		{41, "socket"},
		{42, "connect"},
		{44, "sendto"},
		{45, "recvfrom"},
		{57, "fork"},
		{59, "execve"},
		{60, "exit"},
		{61, "wait4"},
		{63, "uname"},
		{158, "arch_prctl"},
		{202, "futex"},
		{231, "exit_group"},
		{257, "openat"},
		{262, "newfstatat"},
	}

	c := Curated()
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Name(tt.nr))
		})
	}
}

func TestCuratedFallback(t *testing.T) {
	c := Curated()
	for _, nr := range []uint64{18, 400, 1 << 20, ^uint64(0)} {
		name := c.Name(nr)
		assert.Equal(t, "sys_"+strconv.FormatUint(nr, 10), name)
		assert.Contains(t, name, strconv.FormatUint(nr, 10))
	}
}

func TestCuratedNamesNeverLookLikeFallback(t *testing.T) {
	for nr, name := range curated {
		require.False(t, strings.HasPrefix(name, fallbackPrefix), "curated name %q for %d", name, nr)
		require.NotEqual(t, Fallback(nr), name)
	}
}

func TestFullPrefersCurated(t *testing.T) {
	c := Full()
	assert.Equal(t, "read", c.Name(0))
	assert.Equal(t, "exit_group", c.Name(231))
	assert.Equal(t, "sys_"+strconv.FormatUint(^uint64(0), 10), c.Name(^uint64(0)))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		wantErr bool
	}{
		{"default", "", false},
		{"curated", ModeCurated, false},
		{"full", ModeFull, false},
		{"unknown", Mode("everything"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.mode)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "write", c.Name(1))
		})
	}
}
