package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// console is the interactive client-side driver.
type console struct {
	sim *simulation
	rl  *readline.Instance
}

func newConsole(sim *simulation) *console {
	return &console{sim: sim}
}

// run starts the interactive command loop.
func (c *console) run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "uaserve> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	c.rl = rl
	defer rl.Close()

	c.printHelp()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "status", "s":
			c.cmdStatus()

		case "diag", "d":
			c.cmdDiag()

		case "publish", "p":
			c.cmdPublish(args)

		case "ack", "a":
			c.cmdAck(args)

		case "republish":
			c.cmdRepublish(args)

		case "pause":
			c.sim.sub.SetPublishingMode(false)
			fmt.Fprintln(rl.Stdout(), "publishing disabled")

		case "resume":
			c.sim.sub.SetPublishingMode(true)
			fmt.Fprintln(rl.Stdout(), "publishing enabled")

		case "terminate":
			c.sim.sub.Terminate()
			fmt.Fprintln(rl.Stdout(), "subscription terminated")

		case "quit", "exit", "q":
			return nil

		default:
			fmt.Fprintf(rl.Stdout(), "unknown command %q, try help\n", cmd)
		}
	}
}

func (c *console) printHelp() {
	fmt.Fprint(c.rl.Stdout(), `Commands:
  status, s           Subscription state and queue depths
  diag, d             Full diagnostics snapshot
  publish [n], p      Park n client publish requests (default 1)
  ack <seq>, a        Acknowledge a sequence number
  republish <seq>     Request retransmission of a sequence number
  pause / resume      Toggle publishing mode
  terminate           Close the subscription
  quit, exit, q       Leave
`)
}

func (c *console) cmdStatus() {
	sub := c.sim.sub
	fmt.Fprintf(c.rl.Stdout(),
		"state=%s publishingEnabled=%t pending=%d sent=%d parkedRequests=%d timeToExpiration=%s\n",
		sub.State(),
		sub.PublishingEnabled(),
		sub.PendingNotificationCount(),
		sub.SentNotificationCount(),
		c.sim.engine.PendingPublishRequestCount(),
		sub.TimeToExpiration())
}

func (c *console) cmdDiag() {
	diag := c.sim.sub.Diagnostics()
	out := c.rl.Stdout()
	fmt.Fprintf(out, "sessionId:             %s\n", diag.SessionID)
	fmt.Fprintf(out, "subscriptionId:        %d\n", diag.SubscriptionID)
	fmt.Fprintf(out, "state:                 %s\n", diag.State)
	fmt.Fprintf(out, "publishingInterval:    %s\n", diag.PublishingInterval)
	fmt.Fprintf(out, "maxKeepAliveCount:     %d (counter %d)\n", diag.MaxKeepAliveCount, diag.KeepAliveCounter)
	fmt.Fprintf(out, "maxLifetimeCount:      %d (counter %d)\n", diag.MaxLifetimeCount, diag.LifeTimeCounter)
	fmt.Fprintf(out, "monitoredItems:        %d (%d disabled)\n", diag.MonitoredItemCount, diag.DisabledMonitoredItemCount)
	fmt.Fprintf(out, "nextSequenceNumber:    %d\n", diag.NextSequenceNumber)
	fmt.Fprintf(out, "notificationsCount:    %d (%d data changes, %d events)\n",
		diag.NotificationsCount, diag.DataChangeNotificationsCount, diag.EventNotificationsCount)
	fmt.Fprintf(out, "publishRequestCount:   %d\n", diag.PublishRequestCount)
	fmt.Fprintf(out, "republish:             %d requests, %d served\n", diag.RepublishRequestCount, diag.RepublishMessageCount)
	fmt.Fprintf(out, "modify/enable/disable: %d/%d/%d\n", diag.ModifyCount, diag.EnableCount, diag.DisableCount)
	fmt.Fprintf(out, "availableSequences:    %v\n", c.sim.sub.AvailableSequenceNumbers())
}

func (c *console) cmdPublish(args []string) {
	n := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			fmt.Fprintln(c.rl.Stdout(), "usage: publish [n]")
			return
		}
		n = parsed
	}
	for i := 0; i < n; i++ {
		c.sim.engine.ParkPublishRequest()
		c.sim.sub.ProcessPublishRequest()
	}
	fmt.Fprintf(c.rl.Stdout(), "parked %d publish request(s)\n", n)
}

func (c *console) cmdAck(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.rl.Stdout(), "usage: ack <seq>")
		return
	}
	seq, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Fprintln(c.rl.Stdout(), "usage: ack <seq>")
		return
	}
	status := c.sim.sub.Acknowledge(uint32(seq))
	fmt.Fprintf(c.rl.Stdout(), "ack %d: %s\n", seq, status)
}

func (c *console) cmdRepublish(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.rl.Stdout(), "usage: republish <seq>")
		return
	}
	seq, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Fprintln(c.rl.Stdout(), "usage: republish <seq>")
		return
	}
	msg, status := c.sim.sub.Republish(uint32(seq))
	if status.IsBad() {
		fmt.Fprintf(c.rl.Stdout(), "republish %d: %s\n", seq, status)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "republish %d: %d payload entries from %s\n",
		seq, len(msg.NotificationData), msg.PublishTime.Format("15:04:05.000"))
}
