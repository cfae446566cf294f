// Command layoutctl sends a single request to a running layoutd.
//
//	layoutctl list /trading
//	layoutctl select /trading "Default Trading"
//	layoutctl edit '[{"i":"chart","c":"CHART","x":0,"y":0,"w":24,"h":12}]'
//	layoutctl save
package main

import (
	"codeberg.org/miketth/layoutd/pkg/control"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	socketPath := flag.String("socket", "", "control socket path (default: $XDG_RUNTIME_DIR/layoutd/control.sock)")
	flag.Parse()

	if flag.NArg() == 0 {
		return errors.New("missing command")
	}

	if *socketPath == "" {
		path, err := control.SocketPath()
		if err != nil {
			return fmt.Errorf("get socket path: %w", err)
		}
		*socketPath = path
	}

	client, err := control.Dial(*socketPath)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	resp, err := client.Request(flag.Arg(0), flag.Args()[1:]...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, resp)
	return err
}
