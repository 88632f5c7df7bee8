package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/prescreen/internal/client/checklist"
	"github.com/dmitrijs2005/prescreen/internal/client/detail"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/client/present"
	"github.com/dmitrijs2005/prescreen/internal/common"
	"github.com/dmitrijs2005/prescreen/internal/filex"
)

// detailExec is the command surface of the detail screen.
type detailExec interface {
	isStaff() bool
	closed() bool
	Docs(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	Review(ctx context.Context, args []string, status models.DocumentStatus) error
	Preview(ctx context.Context, args []string) error
	Chat(ctx context.Context) error
	Say(ctx context.Context, args []string) error
	Delete(ctx context.Context) error
	PreScreen(ctx context.Context) error
	Summary(ctx context.Context) error
}

// runDetailREPL serves one application until "back", EOF, or the
// application is deleted.
func runDetailREPL(ctx context.Context, s detailExec, in *bufio.Reader) {
	for !s.closed() {
		printlnFn("application> ")
		cmd, args, ok := readCommand(in)
		if !ok {
			return
		}

		switch cmd {
		case "":
			continue

		case "help":
			if s.isStaff() {
				printlnFn("Available commands: docs, verify <docId>, reject <docId>, preview <docId>, chat, say [text], summary, prescreen, delete, back")
			} else {
				printlnFn("Available commands: docs, upload <TYPE> <path>, preview <docId>, chat, say [text], summary, back")
			}

		case "docs":
			_ = s.Docs(ctx)
		case "upload":
			_ = s.Upload(ctx, args)
		case "verify":
			_ = s.Review(ctx, args, models.StatusVerified)
		case "reject":
			_ = s.Review(ctx, args, models.StatusRejected)
		case "preview":
			_ = s.Preview(ctx, args)
		case "chat":
			_ = s.Chat(ctx)
		case "say":
			_ = s.Say(ctx, args)
		case "delete":
			_ = s.Delete(ctx)
		case "prescreen":
			_ = s.PreScreen(ctx)
		case "summary":
			_ = s.Summary(ctx)

		case "back":
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// detailScreen renders a detail.Controller to the terminal.
type detailScreen struct {
	app  *App
	ctl  *detail.Controller
	left bool
}

func (s *detailScreen) isStaff() bool { return s.app.store.IsStaff() }
func (s *detailScreen) closed() bool  { return s.left }

// Navigate makes the screen a detail.Navigator: any navigation leaves it.
func (s *detailScreen) Navigate(context.Context, string) {
	s.left = true
}

func (s *detailScreen) header() {
	renderApplicationHeader(s.app.out, s.ctl.State().Application)
}

func (s *detailScreen) Docs(context.Context) error {
	renderChecklist(s.app.out, checklist.Sections(s.ctl.State().Documents, s.isStaff()))
	return nil
}

func (s *detailScreen) Upload(ctx context.Context, args []string) error {
	if s.isStaff() {
		printlnFn("Only applicants upload documents")
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: upload <TYPE> <path>")
		return nil
	}

	entry, ok := models.LookupDocumentType(models.DocumentType(strings.ToUpper(args[0])))
	if !ok {
		printlnFn("Unknown document type:", args[0])
		return nil
	}

	path := strings.Join(args[1:], " ")
	f, err := os.Open(path)
	if err != nil {
		printlnFn("Cannot open file:", err)
		return err
	}
	defer f.Close()

	if err := s.ctl.Upload(ctx, entry.Type, filepath.Base(path), f); err != nil {
		return err
	}
	return s.Docs(ctx)
}

func parseDocID(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	return id, err == nil
}

func (s *detailScreen) Review(ctx context.Context, args []string, status models.DocumentStatus) error {
	docID, ok := parseDocID(args)
	if !ok {
		printlnFn("Usage: verify|reject <docId>")
		return nil
	}

	err := s.ctl.Verify(ctx, docID, status)
	if errors.Is(err, common.ErrorStaffOnly) {
		printlnFn("Only bank staff can review documents")
		return err
	}
	if err != nil {
		return err
	}
	return s.Docs(ctx)
}

// Preview saves the document under the download directory; a terminal
// cannot show it inline.
func (s *detailScreen) Preview(ctx context.Context, args []string) error {
	docID, ok := parseDocID(args)
	if !ok {
		printlnFn("Usage: preview <docId>")
		return nil
	}

	blob, err := s.ctl.Preview(ctx, docID)
	if err != nil {
		return err
	}

	dir, err := filex.EnsureSubdDir(s.app.config.DownloadDir)
	if err != nil {
		printlnFn("Cannot create download directory:", err)
		return err
	}
	path, err := filex.SaveUnique(dir, blob.Filename, blob.Data)
	if err != nil {
		printlnFn("Cannot save file:", err)
		return err
	}

	fmt.Fprintf(s.app.out, "Saved %s (%s, %s)\n", path, blob.ContentType, present.Size(len(blob.Data)))
	return nil
}

func (s *detailScreen) Chat(context.Context) error {
	renderChat(s.app.out, s.ctl.State().Comments, s.isStaff())
	return nil
}

// Say posts a message; with no inline text it reads several lines.
func (s *detailScreen) Say(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		var err error
		if text, err = getMultiline(s.app.reader, "Type your message", s.app.out); err != nil {
			return err
		}
	}
	s.ctl.SetDraft(text)

	before := len(s.ctl.State().Comments)
	if err := s.ctl.SendMessage(ctx, text); err != nil {
		return err
	}
	if len(s.ctl.State().Comments) > before {
		return s.Chat(ctx)
	}
	return nil
}

func (s *detailScreen) Delete(ctx context.Context) error {
	err := s.ctl.Delete(ctx)
	switch {
	case errors.Is(err, common.ErrorStaffOnly):
		printlnFn("Only bank staff can delete applications")
	case errors.Is(err, detail.ErrCancelled):
		printlnFn("Cancelled")
	}
	return err
}

func (s *detailScreen) PreScreen(ctx context.Context) error {
	report, err := s.ctl.RunPreScreen(ctx)
	if errors.Is(err, common.ErrorStaffOnly) {
		printlnFn("Only bank staff can run the pre-screen")
		return err
	}
	if err != nil {
		return err
	}
	renderPreScreen(s.app.out, report)
	return nil
}

func (s *detailScreen) Summary(ctx context.Context) error {
	sum, err := s.ctl.Summary(ctx)
	if err != nil {
		return err
	}
	renderSummary(s.app.out, sum)
	return nil
}
