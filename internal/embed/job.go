package embed

import (
	"fmt"
	"os"
	"time"
)

// OutputExt is appended to a job's output stem.
const OutputExt = ".cpp"

// Job is one generator invocation: an output stem and its ordered inputs.
// Input order is the emission order of arrays and accessors.
type Job struct {
	Output   string
	Requests []Request
}

// NewJob builds a Job with one Request per input path, preserving order.
func NewJob(output string, inputs []string) Job {
	reqs := make([]Request, len(inputs))
	for i, in := range inputs {
		reqs[i] = NewRequest(in)
	}
	return Job{Output: output, Requests: reqs}
}

// OutputPath is the file the job writes.
func (j Job) OutputPath() string {
	return j.Output + OutputExt
}

// Run generates the job's source and writes it to OutputPath. Nothing is
// written unless every input was read successfully.
func Run(j Job, opts Options, now time.Time) error {
	src, err := Generate(j, opts, now)
	if err != nil {
		return err
	}
	return WriteOutput(j.OutputPath(), src)
}

// WriteOutput writes the generated source to path.
func WriteOutput(path, src string) error {
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return &Error{Kind: UnwritableOutput, Path: path, Err: err}
	}
	return nil
}

// Describe returns a one-line summary used in log and confirmation output.
func (j Job) Describe() string {
	return fmt.Sprintf("%s (%d inputs)", j.OutputPath(), len(j.Requests))
}
