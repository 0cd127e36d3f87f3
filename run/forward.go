package run

import (
	"bufio"
	"io"
	"strings"

	"github.com/simonhull/firebird-suite/talon/output"
)

// Forwarder drains one text stream line by line on its own goroutine,
// optionally capturing lines and optionally forwarding each completed
// line to a sink. A bare trailing carriage return is stripped from every
// line, and an unterminated final segment is still flushed when the
// stream closes.
//
// Each Forwarder is single-use: capture and forwarding may each be
// configured at most once. A second configuration attempt panics, since
// wiring two consumers to one stream is a programming error.
type Forwarder struct {
	capturing bool
	lines     []string
	sink      output.LineSink
	onLine    func(string)
}

// NewForwarder returns an unconfigured forwarder.
func NewForwarder() *Forwarder {
	return &Forwarder{}
}

// Capture enables capturing completed lines. May be called once.
func (f *Forwarder) Capture() *Forwarder {
	if f.capturing {
		panic("run: Capture configured twice on the same Forwarder")
	}
	f.capturing = true
	return f
}

// ForwardTo forwards each completed line to sink. May be called once.
func (f *Forwarder) ForwardTo(sink output.LineSink) *Forwarder {
	if f.sink != nil {
		panic("run: ForwardTo configured twice on the same Forwarder")
	}
	if sink == nil {
		panic("run: ForwardTo called with a nil sink")
	}
	f.sink = sink
	return f
}

// OnLine invokes fn for each completed line. May be called once.
func (f *Forwarder) OnLine(fn func(string)) *Forwarder {
	if f.onLine != nil {
		panic("run: OnLine configured twice on the same Forwarder")
	}
	if fn == nil {
		panic("run: OnLine called with a nil callback")
	}
	f.onLine = fn
	return f
}

// BeginRead drains r on a new goroutine. The returned channel closes when
// the stream has been fully consumed and every buffered line flushed.
func (f *Forwarder) BeginRead(r io.Reader) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.Read(r)
	}()
	return done
}

// Read drains r until EOF, emitting completed lines as it goes.
func (f *Forwarder) Read(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			f.emit(line)
		}
		if err != nil {
			return
		}
	}
}

// CapturedText returns the captured lines joined with newlines. Empty
// when capture was never enabled.
func (f *Forwarder) CapturedText() string {
	return strings.Join(f.lines, "\n")
}

func (f *Forwarder) emit(line string) {
	if f.capturing {
		f.lines = append(f.lines, line)
	}
	if f.sink != nil {
		f.sink.WriteLine(line)
	}
	if f.onLine != nil {
		f.onLine(line)
	}
}

// configured reports whether any consumer has been wired. Execute uses
// this to decide whether a default sink is needed.
func (f *Forwarder) configured() bool {
	return f.capturing || f.sink != nil || f.onLine != nil
}
