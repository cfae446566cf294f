package control

import (
	"bufio"
	"codeberg.org/miketth/layoutd/pkg/layouts"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
)

type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

// errorMapper turns error responses back into the sentinel errors of the
// layouts and control packages.
var errorMapper = []struct {
	re  *regexp.Regexp
	err error
}{
	{regexp.MustCompile(layouts.ErrLayoutNotFound.Error()), layouts.ErrLayoutNotFound},
	{regexp.MustCompile(layouts.ErrCrossRouteSelection.Error()), layouts.ErrCrossRouteSelection},
	{regexp.MustCompile(layouts.ErrNotDeletable.Error()), layouts.ErrNotDeletable},
	{regexp.MustCompile(layouts.ErrDuplicateLayoutID.Error()), layouts.ErrDuplicateLayoutID},
	{regexp.MustCompile(layouts.ErrNoActiveDraft.Error()), layouts.ErrNoActiveDraft},
	{regexp.MustCompile(layouts.ErrImmutableFieldViolation.Error()), layouts.ErrImmutableFieldViolation},
	{regexp.MustCompile(layouts.ErrDuplicateWidgetID.Error()), layouts.ErrDuplicateWidgetID},
	{regexp.MustCompile(ErrRouteNotManaged.Error()), ErrRouteNotManaged},
	{regexp.MustCompile(ErrUnknownCommand.Error()), ErrUnknownCommand},
	{regexp.MustCompile(ErrInvalidArguments.Error()), ErrInvalidArguments},
}

func Dial(path string) (*Client, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("dial: %w, %w", err, ErrNotRunning)
	}

	return NewClient(conn), nil
}

func NewClient(conn net.Conn) *Client {
	return &Client{conn: conn, reader: bufio.NewReader(conn)}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Request sends one command and waits for its response. Error responses are
// returned as errors wrapping the matching sentinel error.
func (c *Client) Request(command string, args ...string) (string, error) {
	line := command
	if len(args) > 0 {
		line += fieldSplitter + strings.Join(args, ",")
	}

	if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
		return "", fmt.Errorf("write to control socket: %w", err)
	}

	resp, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read from control socket: %w", err)
	}
	resp = strings.TrimSuffix(resp, "\n")

	msg, isErr := strings.CutPrefix(resp, errorPrefix)
	if !isErr {
		return resp, nil
	}

	for _, m := range errorMapper {
		if m.re.MatchString(msg) {
			return "", fmt.Errorf("%s: %w", msg, m.err)
		}
	}
	return "", errors.New(msg)
}
