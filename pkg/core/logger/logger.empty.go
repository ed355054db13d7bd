//go:build logless

package logger

// Log is a no-op logger used when the module is built with the logless tag,
// e.g. for size-constrained embedded targets.
var Log = EmptyLog{}

type EmptyLog struct{}

func (l EmptyLog) Debug() EmptyLog   { return l }
func (l EmptyLog) Error() EmptyLog   { return l }
func (l EmptyLog) Warning() EmptyLog { return l }
func (l EmptyLog) Warn() EmptyLog    { return l }
func (l EmptyLog) Info() EmptyLog    { return l }

func (l EmptyLog) Msg(string) EmptyLog { return l }
func (l EmptyLog) Err(error) EmptyLog  { return l }

func (l EmptyLog) Int(string, int) EmptyLog       { return l }
func (l EmptyLog) Str(string, string) EmptyLog    { return l }
func (l EmptyLog) Float(string, float64) EmptyLog { return l }
func (l EmptyLog) Float64(string, float64) EmptyLog { return l }
func (l EmptyLog) Uint32(string, uint32) EmptyLog  { return l }
