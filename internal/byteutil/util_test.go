package byteutil

import "testing"

func TestUint64RoundTrip(t *testing.T) {
	t.Parallel()

	for _, id := range []uint64{0, 1, 255, 1 << 32, 1<<64 - 1} {
		if got := DecodeUint64FromBytes(EncodeUint64ToBytes(id)); got != id {
			t.Errorf("expected %d got %d", id, got)
		}
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	t.Parallel()

	if got := DecodeUint64FromBytes(nil); got != 0 {
		t.Errorf("expected 0 got %d", got)
	}

	if got := DecodeUint64FromBytes([]byte{1, 2, 3}); got != 0 {
		t.Errorf("expected 0 got %d", got)
	}
}

func TestBytesToString(t *testing.T) {
	t.Parallel()

	if got := BytesToString([]byte("stat")); got != "stat" {
		t.Errorf("expected stat got %s", got)
	}
}
