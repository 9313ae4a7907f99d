package session

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/gravscroll/internal/gravity"
)

const (
	CmdStart        = "start"
	CmdStop         = "stop"
	CmdUpdateParams = "updateParams"
	CmdScroll       = "scroll"
)

// Command is a control message from the messaging layer.
type Command struct {
	Command string         `json:"command"`
	Params  *gravity.Patch `json:"params,omitempty"`
}

func DecodeCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrMalformedCommand, err)
	}
	return cmd, nil
}

// Dispatch applies cmd to the controller. An updateParams message without
// params changes nothing.
func (c *Controller) Dispatch(cmd Command) error {
	switch cmd.Command {
	case CmdStart:
		c.Start()
	case CmdStop:
		c.Stop()
	case CmdUpdateParams:
		if cmd.Params == nil {
			return nil
		}
		return c.UpdateParams(*cmd.Params)
	case CmdScroll:
		c.Descend()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Command)
	}
	return nil
}
