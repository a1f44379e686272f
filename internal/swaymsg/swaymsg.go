// Package swaymsg talks to Sway through the swaymsg command-line bridge.
//
// Replies are decoded into fixed-shape records; fields the tool does not
// consume are ignored.
package swaymsg

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// DefaultBinary is the bridge executable looked up in PATH.
const DefaultBinary = "swaymsg"

// Runner executes the bridge binary and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name with args. A non-zero exit is reported together with the
// command's stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(string(out))
		}
		if msg != "" {
			return out, errors.Wrapf(err, "%s: %s", name, msg)
		}
		return out, errors.Wrapf(err, "%s", name)
	}
	return out, nil
}

// CurrentMode is the active video mode of an output.
type CurrentMode struct {
	Width              *int   `json:"width"`
	Height             *int   `json:"height"`
	Refresh            int    `json:"refresh"`
	PictureAspectRatio string `json:"picture_aspect_ratio"`
}

// Output is one record of a get_outputs reply.
type Output struct {
	Name        string       `json:"name"`
	Active      bool         `json:"active"`
	Focused     bool         `json:"focused"`
	Scale       *float64     `json:"scale"`
	CurrentMode *CurrentMode `json:"current_mode"`
}

// CommandReply is the per-command result of a run_command message.
type CommandReply struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Client invokes swaymsg.
type Client struct {
	Binary string
	Socket string
	Runner Runner
}

// NewClient returns a client for the given binary and optional socket path.
func NewClient(binary, socket string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{Binary: binary, Socket: socket, Runner: ExecRunner{}}
}

// Outputs returns the get_outputs reply.
func (c *Client) Outputs(ctx context.Context) ([]Output, error) {
	data, err := c.query(ctx, "get_outputs")
	if err != nil {
		return nil, err
	}
	return DecodeOutputs(data)
}

// RunCommands sends commands as a single batch joined with ';'. Any reply
// with success=false fails the whole call.
func (c *Client) RunCommands(ctx context.Context, commands ...string) error {
	if len(commands) == 0 {
		return nil
	}
	args := append(c.baseArgs(), JoinCommands(commands...))
	out, err := c.runner().Run(ctx, c.binary(), args...)
	if err != nil {
		return errors.Wrap(err, "run sway command")
	}
	replies, err := DecodeCommandReplies(out)
	if err != nil {
		return err
	}
	return CheckReplies(replies)
}

// JoinCommands joins IPC commands with the command delimiter.
func JoinCommands(commands ...string) string {
	return strings.Join(commands, ";")
}

// CheckReplies returns an error for the first failed reply.
func CheckReplies(replies []CommandReply) error {
	for i, r := range replies {
		if !r.Success {
			if r.Error == "" {
				return errors.Errorf("sway command %d failed", i+1)
			}
			return errors.Errorf("sway command %d failed: %s", i+1, r.Error)
		}
	}
	return nil
}

func (c *Client) query(ctx context.Context, msgType string) ([]byte, error) {
	args := append(c.baseArgs(), "--type", msgType)
	out, err := c.runner().Run(ctx, c.binary(), args...)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", msgType)
	}
	return out, nil
}

func (c *Client) baseArgs() []string {
	args := []string{"--raw"}
	if c.Socket != "" {
		args = append(args, "--socket", c.Socket)
	}
	return args
}

func (c *Client) binary() string {
	if c.Binary == "" {
		return DefaultBinary
	}
	return c.Binary
}

func (c *Client) runner() Runner {
	if c.Runner == nil {
		return ExecRunner{}
	}
	return c.Runner
}

// DecodeOutputs decodes a get_outputs reply.
func DecodeOutputs(data []byte) ([]Output, error) {
	var outputs []Output
	if err := json.Unmarshal(data, &outputs); err != nil {
		return nil, errors.Wrap(err, "decode get_outputs reply")
	}
	return outputs, nil
}

// DecodeCommandReplies decodes a run_command reply. Empty output is treated
// as success since older swaymsg builds print nothing with --raw.
func DecodeCommandReplies(data []byte) ([]CommandReply, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var replies []CommandReply
	if err := json.Unmarshal(data, &replies); err != nil {
		return nil, errors.Wrap(err, "decode run_command reply")
	}
	return replies, nil
}

// FocusedOutput returns the first focused output.
func FocusedOutput(outputs []Output) (Output, bool) {
	for _, o := range outputs {
		if o.Focused {
			return o, true
		}
	}
	return Output{}, false
}

// Mode validates and returns the pixel size and scale of an output.
func (o Output) Mode() (width, height int, scale float64, err error) {
	if o.CurrentMode == nil {
		return 0, 0, 0, errors.Errorf("output %q has no current_mode", o.Name)
	}
	if o.CurrentMode.Width == nil || o.CurrentMode.Height == nil {
		return 0, 0, 0, errors.Errorf("output %q current_mode is missing width or height", o.Name)
	}
	if o.Scale == nil || *o.Scale <= 0 {
		return 0, 0, 0, errors.Errorf("output %q has no valid scale", o.Name)
	}
	return *o.CurrentMode.Width, *o.CurrentMode.Height, *o.Scale, nil
}
