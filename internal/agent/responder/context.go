package responder

// NoAnalysisPlaceholder is what narrative responders see when analysis
// has not run before them.
const NoAnalysisPlaceholder = "No analysis available."

// Context is the shared mutable state threaded through one pipeline run.
// Responders execute strictly sequentially, so no locking is needed; the
// context never outlives its request.
type Context struct {
	entries map[Key]Result
}

// NewContext creates an empty shared context.
func NewContext() *Context {
	return &Context{entries: make(map[Key]Result)}
}

// Set records a responder result.
func (c *Context) Set(k Key, r Result) {
	c.entries[k] = r
}

// Get returns the result stored under k.
func (c *Context) Get(k Key) (Result, bool) {
	r, ok := c.entries[k]
	return r, ok
}

// Len returns the number of stored results.
func (c *Context) Len() int {
	return len(c.entries)
}

// AnalysisText returns the analysis result text, or the placeholder when
// analysis has not run.
func (c *Context) AnalysisText() string {
	if r, ok := c.entries[KeyAnalysis]; ok && r.Text != "" {
		return r.Text
	}
	return NoAnalysisPlaceholder
}
