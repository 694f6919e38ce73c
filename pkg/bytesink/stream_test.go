// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytesink

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder remembers every physical write it receives.
type recorder struct {
	calls []string
}

func (r *recorder) Write(p []byte) (int, error) {
	r.calls = append(r.calls, string(p))
	return len(p), nil
}

func (r *recorder) joined() []byte {
	var b bytes.Buffer
	for _, c := range r.calls {
		b.WriteString(c)
	}
	return b.Bytes()
}

// failAfter accepts n writes and fails every write after that.
type failAfter struct {
	n     int
	calls int
	err   error
}

func (w *failAfter) Write(p []byte) (int, error) {
	w.calls++
	if w.calls > w.n {
		return 0, w.err
	}
	return len(p), nil
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

func testData(n int) []byte {
	b := make([]byte, n)
	x := uint32(2463534242)
	for i := range b {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		b[i] = byte(x)
	}
	return b
}

func TestBufferingEquivalence(t *testing.T) {
	data := testData(5000)
	writers := map[string]func(s *Writer, p []byte){
		"single": func(s *Writer, p []byte) {
			s.Write(p)
		},
		"bytes": func(s *Writer, p []byte) {
			for _, c := range p {
				s.WriteByte(c)
			}
		},
		"string": func(s *Writer, p []byte) {
			s.WriteString(string(p))
		},
		"chunks": func(s *Writer, p []byte) {
			sizes := []int{1, 3, 17, 1000, 2, 1024, 511}
			for i := 0; len(p) > 0; i++ {
				n := min(sizes[i%len(sizes)], len(p))
				s.Write(p[:n])
				p = p[n:]
			}
		},
		"mixed": func(s *Writer, p []byte) {
			for i := 0; len(p) > 0; i++ {
				if i%2 == 0 {
					s.WriteByte(p[0])
					p = p[1:]
					continue
				}
				n := min(i*7, len(p))
				s.Write(p[:n])
				p = p[n:]
			}
		},
	}
	for _, size := range []int{1, 2, 3, 7, 16, 1024, 4096, 10000} {
		for name, write := range writers {
			t.Run(fmt.Sprintf("%s/%d", name, size), func(t *testing.T) {
				rec := &recorder{}
				s := NewWriter(rec, Options{BufferSize: size})
				write(s, data)
				s.Flush()
				if got := rec.joined(); !bytes.Equal(got, data) {
					t.Fatalf("backend received %d bytes, want %d identical bytes", len(got), len(data))
				}
				if got := s.Position(); got != int64(len(data)) {
					t.Errorf("Position() = %d, want %d", got, len(data))
				}
			})
		}
	}
}

func TestPosition(t *testing.T) {
	for _, unbuffered := range []bool{false, true} {
		t.Run(fmt.Sprintf("unbuffered=%v", unbuffered), func(t *testing.T) {
			s := NewMemory(Options{BufferSize: 4, Unbuffered: unbuffered})
			var want int64
			check := func(step string) {
				t.Helper()
				if got := s.Position(); got != want {
					t.Fatalf("after %s: Position() = %d, want %d", step, got, want)
				}
			}
			check("nothing")
			s.WriteByte('x')
			want++
			check("WriteByte")
			s.Write([]byte("hello world"))
			want += 11
			check("Write")
			s.Flush()
			check("Flush")
			s.WriteString("abc")
			want += 3
			check("WriteString")
			s.Write(nil)
			check("empty Write")
			s.Flush()
			if got := s.Bytes().Len(); int64(got) != want {
				t.Errorf("content length = %d, want %d", got, want)
			}
		})
	}
}

func TestChunking(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		writes []string
		// calls seen by the backend before the final Flush.
		want []string
		// calls added by the final Flush.
		wantFlush []string
	}{
		{
			name:      "fits",
			size:      8,
			writes:    []string{"abc", "def"},
			want:      nil,
			wantFlush: []string{"abcdef"},
		},
		{
			name:      "exact fit stays buffered",
			size:      4,
			writes:    []string{"abcd"},
			want:      nil,
			wantFlush: []string{"abcd"},
		},
		{
			name:      "empty buffer writes whole buffers directly",
			size:      4,
			writes:    []string{"abcdefghij"},
			want:      []string{"abcdefgh"},
			wantFlush: []string{"ij"},
		},
		{
			name:      "empty buffer multiple of size",
			size:      4,
			writes:    []string{"abcdefgh"},
			want:      []string{"abcdefgh"},
			wantFlush: nil,
		},
		{
			name:      "non-empty buffer is topped up first",
			size:      4,
			writes:    []string{"ab", "cdefghij"},
			want:      []string{"abcd", "efgh"},
			wantFlush: []string{"ij"},
		},
		{
			name:      "non-empty buffer small overflow",
			size:      4,
			writes:    []string{"abc", "de"},
			want:      []string{"abcd"},
			wantFlush: []string{"e"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			s := NewWriter(rec, Options{BufferSize: tt.size})
			for _, w := range tt.writes {
				s.Write([]byte(w))
			}
			if diff := cmp.Diff(tt.want, rec.calls); diff != "" {
				t.Errorf("backend calls mismatch (-want +got):\n%s", diff)
			}
			rec.calls = nil
			s.Flush()
			if diff := cmp.Diff(tt.wantFlush, rec.calls); diff != "" {
				t.Errorf("flush calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteByteFlushesFullBuffer(t *testing.T) {
	rec := &recorder{}
	s := NewWriter(rec, Options{BufferSize: 2})
	s.WriteByte('a')
	s.WriteByte('b')
	if len(rec.calls) != 0 {
		t.Fatalf("calls = %q, want none before the buffer overflows", rec.calls)
	}
	s.WriteByte('c')
	if diff := cmp.Diff([]string{"ab"}, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestUnbufferedForwardsEveryCall(t *testing.T) {
	rec := &recorder{}
	s := NewWriter(rec, Options{Unbuffered: true})
	s.WriteString("line 1\n")
	s.WriteByte('x')
	s.Write([]byte("line 2\n"))
	want := []string{"line 1\n", "x", "line 2\n"}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if s.Buffered() {
		t.Error("Buffered() = true, want false")
	}
}

func TestDefaultBufferSize(t *testing.T) {
	s := NewMemory(Options{})
	if got := s.BufferSize(); got != DefaultBufferSize {
		t.Errorf("BufferSize() = %d, want %d", got, DefaultBufferSize)
	}
	s = NewMemory(Options{BufferSize: -5})
	if got := s.BufferSize(); got != DefaultBufferSize {
		t.Errorf("BufferSize() with negative option = %d, want %d", got, DefaultBufferSize)
	}
}

func TestStickyError(t *testing.T) {
	boom := errors.New("boom")
	w := &failAfter{n: 1, err: boom}
	s := NewWriter(w, Options{BufferSize: 2})
	s.WriteString("ab")
	s.WriteString("cd") // sends "ab"
	s.WriteString("ef") // sends "cd", which fails
	if !errors.Is(s.Err(), boom) {
		t.Fatalf("Err() = %v, want %v", s.Err(), boom)
	}
	// Writes keep being accepted after the failure.
	if n, err := s.WriteString("more"); n != 4 || err != nil {
		t.Errorf("WriteString after failure = %d, %v; want 4, nil", n, err)
	}
	if got := s.Position(); got != 10 {
		t.Errorf("Position() = %d, want 10", got)
	}
	err := s.Close()
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Close() = %v, want *IOError", err)
	}
	if ioErr.Op != "write" || !errors.Is(err, boom) {
		t.Errorf("Close() = %+v, want write error wrapping %v", ioErr, boom)
	}
}

func TestShortWrite(t *testing.T) {
	s := NewWriter(shortWriter{}, Options{Unbuffered: true})
	s.WriteString("abcd")
	if !errors.Is(s.Err(), io.ErrShortWrite) {
		t.Errorf("Err() = %v, want %v", s.Err(), io.ErrShortWrite)
	}
}

func TestPrintf(t *testing.T) {
	m := NewMemory(Options{BufferSize: 3})
	m.Printf("%s=%d\n", "answer", 42)
	if got, want := m.String(), "answer=42\n"; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}
