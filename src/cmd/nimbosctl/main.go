// Command nimbosctl is an interactive console for driving a nimbos
// scheduler from a terminal, the hosted-Go replacement for the teacher's
// joy/console.go serial console: where that one spoke UART frames to a
// physical Pi, this one reads raw keystrokes from the controlling tty via
// github.com/mattn/go-tty (the same library the teacher's bootloader-side
// tools use to talk to a device) and drives an in-memory *sched.Kernel.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	tty "github.com/mattn/go-tty"

	"nimbos/src/kernel/sched"
	"nimbos/src/kernel/tcb"
	"nimbos/src/lib/trust"
)

func main() {
	ncpu := flag.Int("ncpu", 1, "number of simulated CPUs (1 selects the uniprocessor contract)")
	flag.Parse()

	log := trust.New("nimbosctl", trust.ErrorMask|trust.WarnMask|trust.InfoMask)
	k := sched.New(*ncpu, sched.WithLogger(log))
	k.Ready()

	t, err := tty.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nimbosctl: %v\n", err)
		os.Exit(1)
	}
	defer t.Close()

	console := &console{kernel: k, tasks: map[string]*tcb.TCB{}, tty: t}
	console.banner()
	console.run()
}

type console struct {
	kernel *sched.Kernel
	tasks  map[string]*tcb.TCB
	tty    *tty.TTY
}

func (c *console) banner() {
	fmt.Fprintf(os.Stdout, "nimbosctl: %d cpu(s), SMP=%v\n", c.kernel.NCPU, c.kernel.SMP)
	fmt.Fprintln(os.Stdout, "commands: admit <name> <priority> [cpu], remove <name>, show, check, quit")
}

// run reads one line at a time from the raw tty and dispatches it. Each
// keystroke comes through ReadRune so the console can echo locally and
// handle backspace the way a line-disciplined serial console would.
func (c *console) run() {
	for {
		fmt.Fprint(os.Stdout, "> ")
		line, err := c.readLine()
		if err != nil {
			return
		}
		if !c.dispatch(strings.TrimSpace(line)) {
			return
		}
	}
}

func (c *console) readLine() (string, error) {
	var sb strings.Builder
	for {
		r, err := c.tty.ReadRune()
		if err != nil {
			return "", err
		}
		switch r {
		case '\r', '\n':
			fmt.Fprintln(os.Stdout)
			return sb.String(), nil
		case 127, '\b':
			if sb.Len() > 0 {
				s := sb.String()
				sb.Reset()
				sb.WriteString(s[:len(s)-1])
				fmt.Fprint(os.Stdout, "\b \b")
			}
		default:
			sb.WriteRune(r)
			fmt.Fprint(os.Stdout, string(r))
		}
	}
}

func (c *console) dispatch(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	switch fields[0] {
	case "quit", "exit":
		return false
	case "admit":
		c.cmdAdmit(fields[1:])
	case "remove":
		c.cmdRemove(fields[1:])
	case "show":
		c.cmdShow()
	case "check":
		c.cmdCheck()
	default:
		fmt.Fprintf(os.Stdout, "unknown command %q\n", fields[0])
	}
	return true
}

func (c *console) cmdAdmit(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stdout, "usage: admit <name> <priority> [cpu]")
		return
	}
	priority, err := strconv.Atoi(args[1])
	if err != nil || priority < 0 || priority > 255 {
		fmt.Fprintf(os.Stdout, "invalid priority %q\n", args[1])
		return
	}
	task := tcb.New(args[0], uint8(priority), c.kernel.NCPU)
	if len(args) >= 3 {
		cpu, err := strconv.Atoi(args[2])
		if err != nil || cpu < 0 || cpu >= c.kernel.NCPU {
			fmt.Fprintf(os.Stdout, "invalid cpu %q\n", args[2])
			return
		}
		task.Flags.CPULocked = true
		task.CPU = cpu
	}
	c.tasks[task.Name] = task
	doSwitch := c.kernel.AddReady(task)
	fmt.Fprintf(os.Stdout, "admitted %s: state=%s cpu=%d switch=%v\n", task.Name, task.State, task.CPU, doSwitch)
}

func (c *console) cmdRemove(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stdout, "usage: remove <name>")
		return
	}
	task, ok := c.tasks[args[0]]
	if !ok {
		fmt.Fprintf(os.Stdout, "no such task %q\n", args[0])
		return
	}
	c.kernel.RemoveReady(task)
	delete(c.tasks, args[0])
	fmt.Fprintf(os.Stdout, "removed %s\n", args[0])
}

func (c *console) cmdShow() {
	snap := c.kernel.Snapshot()
	fmt.Fprintf(os.Stdout, "readytorun: %v\n", []string(snap.ReadyToRun))
	fmt.Fprintf(os.Stdout, "pendingtasks: %v\n", []string(snap.Pending))
	for cpu, q := range snap.Assigned {
		fmt.Fprintf(os.Stdout, "assigned[%d]: %v\n", cpu, []string(q))
	}
}

func (c *console) cmdCheck() {
	problems := c.kernel.CheckInvariants()
	if len(problems) == 0 {
		fmt.Fprintln(os.Stdout, "invariants hold")
		return
	}
	for _, p := range problems {
		fmt.Fprintf(os.Stdout, "violation: %s\n", p)
	}
}
