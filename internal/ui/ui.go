// Package ui is the terminal frontend. It only collects operator input and
// renders views; all ledger semantics live in the domain packages.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/m4cd4r4/Assets-App-WA-Region/internal/domain/ledger"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/domain/sans"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/location"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/report"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/store"
)

type UI struct {
	log *slog.Logger
	ds  *store.Dataset
	reg *sans.Registry
	upd *ledger.Updater

	plotsDir string

	in  *bufio.Scanner
	out io.Writer
	loc location.Location
}

func New(log *slog.Logger, ds *store.Dataset, reg *sans.Registry, upd *ledger.Updater, plotsDir string, in io.Reader, out io.Writer) *UI {
	return &UI{
		log: log, ds: ds, reg: reg, upd: upd,
		plotsDir: plotsDir,
		in:       bufio.NewScanner(in),
		out:      out,
		loc:      location.Basement42,
	}
}

func (u *UI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

// Run reads commands until EOF, "quit" or context cancellation. One
// command runs to completion (including serial prompts) before the next is
// read; there is never more than one transaction in flight.
func (u *UI) Run(ctx context.Context) error {
	u.printf("Perth EUC Stock — %s\n", u.loc.Label())
	u.help()
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		u.printf("[%s] > ", u.loc)
		line, ok := u.readLine()
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			u.help()
		case "loc":
			u.switchLocation(args)
		case "items", "list":
			u.showItems()
		case "log":
			u.showLog()
		case "sans":
			u.showSANs(strings.Join(args, " "))
		case "reconcile":
			u.reconcile()
		case "add":
			u.update(ctx, ledger.OpAdd, args)
		case "sub", "subtract":
			u.update(ctx, ledger.OpSubtract, args)
		case "report":
			u.report(args)
		default:
			u.printf("unknown command %q (try: help)\n", cmd)
		}
	}
}

func (u *UI) help() {
	u.printf(`commands:
  loc <4.2|BR|L17|B4.3|Darwin>   switch location
  items                          item counts at the current location
  log                            audit log, newest first
  sans [filter]                  SANs in stock (runs a reconcile pass)
  reconcile                      repair the SAN location column
  add <qty> <item>               add stock (prompts per SAN for tracked items)
  sub <qty> <item>               subtract stock
  report <set>                   write an inventory chart (%s)
  quit
`, strings.Join(report.SetNames(), "|"))
}

func (u *UI) readLine() (string, bool) {
	if !u.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(u.in.Text()), true
}

func (u *UI) switchLocation(args []string) {
	if len(args) != 1 {
		u.printf("usage: loc <code>\n")
		return
	}
	loc, err := location.Parse(args[0])
	if err != nil {
		u.printf("%v\n", err)
		return
	}
	u.loc = loc
	u.printf("now at %s\n", loc.Label())
}

func (u *UI) showItems() {
	u.printf("%-30s %10s %10s\n", "Item", "LastCount", "NewCount")
	for _, it := range u.ds.Items[u.loc] {
		u.printf("%-30s %10d %10d\n", it.Name, it.LastCount, it.NewCount)
	}
}

func (u *UI) showLog() {
	logs := make([]store.AuditEntry, len(u.ds.Logs[u.loc]))
	copy(logs, u.ds.Logs[u.loc])
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	for _, e := range logs {
		u.printf("%s  %-30s %-12s %s\n",
			e.Timestamp.Format(store.TimeLayout), e.Item, e.Action, e.Serial)
	}
}

func (u *UI) showSANs(filter string) {
	assets, conflicts := u.reg.Snapshot(filter)
	for _, c := range conflicts {
		u.printf("WARNING: %s appears at multiple locations: %v\n", c.Serial, c.Locations)
	}
	u.printf("%-12s %-30s %-20s %s\n", "SAN Number", "Item", "Time", "Location")
	for _, a := range assets {
		u.printf("%-12s %-30s %-20s %s\n",
			a.Serial, a.Item, a.RegisteredAt.Format(store.TimeLayout), a.Location)
	}
}

func (u *UI) reconcile() {
	conflicts := u.reg.Reconcile()
	if len(conflicts) == 0 {
		u.printf("locations reconciled, no conflicts\n")
		return
	}
	for _, c := range conflicts {
		u.printf("CONFLICT: %s present at %v\n", c.Serial, c.Locations)
	}
}

func (u *UI) update(ctx context.Context, op ledger.Operation, args []string) {
	if len(args) < 2 {
		u.printf("usage: %s <qty> <item>\n", op)
		return
	}
	qty, err := strconv.Atoi(args[0])
	if err != nil || qty <= 0 {
		u.printf("quantity must be a positive number\n")
		return
	}
	item := strings.Join(args[1:], " ")

	var src ledger.SerialSource
	if ledger.SerialTracked(item) {
		src = &serialPrompt{ui: u, total: qty}
	}
	res, err := u.upd.Update(ctx, u.loc, item, op, qty, src)
	if err != nil {
		u.printf("error: %v\n", err)
		return
	}
	for _, rej := range res.Rejected {
		u.printf("rejected: %v\n", rej.Err)
	}
	if res.Cancelled {
		u.printf("cancelled with %d of %d units entered; %d abandoned\n",
			res.Committed, res.Requested, res.Abandoned)
	} else {
		u.printf("done: %s %d x %s\n", op, res.Committed, item)
	}
	u.showItems()
}

func (u *UI) report(args []string) {
	if len(args) != 1 {
		u.printf("usage: report <%s>\n", strings.Join(report.SetNames(), "|"))
		return
	}
	path, err := report.Write(u.ds, args[0], u.plotsDir)
	if err != nil {
		u.printf("report failed: %v\n", err)
		return
	}
	u.printf("report saved at %s\n", path)
}

// serialPrompt feeds the transaction one SAN per unit. Identifier length
// is checked here at the prompt (5-6 digits) and bad input re-asks; a
// blank line or "cancel" abandons the remaining units.
type serialPrompt struct {
	ui    *UI
	total int
	n     int
}

func (p *serialPrompt) Next() (string, bool) {
	for {
		p.ui.printf("SAN number for unit %d/%d (blank to cancel): ", p.n+1, p.total)
		line, ok := p.ui.readLine()
		if !ok || line == "" || line == "cancel" {
			return "", false
		}
		digits := strings.TrimPrefix(line, "SAN")
		if len(digits) < 5 || len(digits) > 6 || strings.Trim(digits, "0123456789") != "" {
			p.ui.printf("please enter a valid SAN number (5-6 digits)\n")
			continue
		}
		p.n++
		return line, true
	}
}
