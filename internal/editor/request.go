package editor

import (
	"fmt"
	"strconv"
	"strings"
)

// Request asks the user for a value on behalf of a parked command.
type Request struct {
	Token   uint64
	Command string
	Prompt  string
}

type pendingRequest struct {
	req    Request
	resume func(value string) bool
}

// request parks the session until Resume delivers a value that resume
// accepts.
func (e *Editor) request(command, prompt string, resume func(string) bool) *Request {
	e.lastToken++
	e.pending = &pendingRequest{
		req:    Request{Token: e.lastToken, Command: command, Prompt: prompt},
		resume: resume,
	}
	e.opts.logger.Debug("request %d: %s", e.lastToken, command)
	req := e.pending.req
	return &req
}

// Pending returns the parked request, or nil.
func (e *Editor) Pending() *Request {
	if e.pending == nil {
		return nil
	}
	req := e.pending.req
	return &req
}

// Resume delivers value to the parked request named by token. Input the
// command rejects is reported through the Notifier and the request stays
// parked.
func (e *Editor) Resume(token uint64, value string) error {
	if e.pending == nil || e.pending.req.Token != token {
		return fmt.Errorf("%w: token %d", ErrNoRequest, token)
	}
	p := e.pending
	e.Command(p.req.Command, func() {
		if p.resume(value) {
			e.pending = nil
		}
	})
	return nil
}

// Abort drops the parked request.
func (e *Editor) Abort() {
	if e.pending != nil {
		e.opts.logger.Debug("abort %d: %s", e.pending.req.Token, e.pending.req.Command)
		e.pending = nil
	}
}

// SetFillColumn sets the fill column to *arg. Without an argument it asks
// for the value and returns the request.
func (e *Editor) SetFillColumn(arg *int) *Request {
	e.touch(cmdSetFillColumn)
	if arg != nil {
		e.setFillColumn(strconv.Itoa(*arg))
		return nil
	}
	return e.request(cmdSetFillColumn, "Set fill-column to: ", e.setFillColumn)
}

func (e *Editor) setFillColumn(value string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		e.whine(fmt.Sprintf("Invalid fill column: %q", value))
		return false
	}
	e.opts.fillColumn = n
	return true
}
