package cast

import "testing"

func TestSignalConnectAndDisconnect(t *testing.T) {
	var s Signal[int]
	var got []int

	disconnect := s.Connect(func(v int) { got = append(got, v) })
	s.Connect(func(v int) { got = append(got, v*10) })

	s.emit(1, nil)
	disconnect()
	disconnect() // double disconnect is harmless
	s.emit(2, nil)

	want := []int{1, 10, 20}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSignalDisconnectDuringEmission(t *testing.T) {
	var s Signal[int]
	calls := 0

	var disconnectSecond func()
	s.Connect(func(v int) { disconnectSecond() })
	disconnectSecond = s.Connect(func(v int) { calls++ })

	s.emit(1, nil)
	if calls != 0 {
		t.Errorf("handler disconnected mid-emission was still called %d times", calls)
	}
}
