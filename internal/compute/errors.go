package compute

import "github.com/born-ml/kernelcore/internal/errcode"

// SetError records code and message as the last error and returns code.
// An empty message is replaced by the code's standard description.
func (c *Context) SetError(code errcode.Code, message string) errcode.Code {
	if message == "" && code != errcode.Success {
		message = code.Message()
	}
	c.lastError = code
	c.lastErrorMessage = message
	if code != errcode.Success {
		c.logger.Debug("error recorded", "code", code, "message", message)
	}
	return code
}

// PassError records code and prefixes message to the recorded message,
// building a trace as an error travels up through callers. Returns code.
func (c *Context) PassError(code errcode.Code, message string) errcode.Code {
	c.lastError = code
	switch {
	case message == "":
	case c.lastErrorMessage == "":
		c.lastErrorMessage = message
	default:
		c.lastErrorMessage = message + ": " + c.lastErrorMessage
	}
	if c.lastErrorMessage == "" && code != errcode.Success {
		c.lastErrorMessage = code.Message()
	}
	return code
}

// ResetLastError sets the last error to Success with an empty message.
func (c *Context) ResetLastError() {
	c.lastError = errcode.Success
	c.lastErrorMessage = ""
}

// LastError returns the last recorded code.
func (c *Context) LastError() errcode.Code {
	return c.lastError
}

// LastErrorMessage returns the last recorded message.
func (c *Context) LastErrorMessage() string {
	return c.lastErrorMessage
}

// Err returns the last error as an *errcode.Error, or nil on Success.
func (c *Context) Err() error {
	if c.lastError == errcode.Success {
		return nil
	}
	return &errcode.Error{Code: c.lastError, Message: c.lastErrorMessage}
}

// fail records err under op and returns it unchanged.
func (c *Context) fail(op string, err error) error {
	c.SetError(errcode.CodeOf(err), op+": "+err.Error())
	return err
}
