// Package display prints the landing screen, the uploader panel and the
// report summary, and exports the summary to disk.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/medreport/internal/client/models"
	"github.com/dmitrijs2005/medreport/internal/client/upload"
)

const (
	Title   = "MedReport Analyzer"
	Tagline = "Securely upload your medical reports for AI-powered analysis and receive clear, patient-friendly summaries while maintaining HIPAA compliance."
)

// Card is one step of the how-it-works section.
type Card struct {
	Icon  string
	Title string
	Desc  string
}

var HowItWorks = []Card{
	{Icon: "📤", Title: "Upload Your Report", Desc: "Securely upload your medical report through our platform or WhatsApp"},
	{Icon: "🤖", Title: "AI Analysis", Desc: "Our AI extracts key health information while maintaining privacy"},
	{Icon: "📝", Title: "Patient-Friendly Summary", Desc: "Receive a clear, easy-to-understand explanation of your results"},
}

var SecurityBanner = Card{
	Icon:  "🔒",
	Title: "HIPAA-Compliant Security",
	Desc:  "Your medical data is protected with industry-leading encryption and security protocols that meet or exceed HIPAA requirements. We never share your data with third parties without your explicit consent.",
}

const consentText = "I consent to the secure processing of my health data (HIPAA compliant)."

// Header prints the title line with the session status on the right:
// the user's initial when signed in, a sign-in hint otherwise.
func Header(w io.Writer, authenticated bool, user *models.User) {
	status := "Sign in"
	if authenticated {
		status = "Logout"
		if initial := user.Initial(); initial != "" {
			status += " [" + initial + "]"
		}
	}
	fmt.Fprintf(w, "%s    %s\n", Title, status)
	fmt.Fprintln(w, Tagline)
}

func printCard(w io.Writer, c Card) {
	fmt.Fprintf(w, "  %s %s\n", c.Icon, c.Title)
	fmt.Fprintf(w, "     %s\n", c.Desc)
}

// Landing prints the whole landing screen.
func Landing(w io.Writer, authenticated bool, user *models.User, view UploaderView) {
	Header(w, authenticated, user)
	fmt.Fprintln(w)
	Uploader(w, view)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "How It Works")
	for _, c := range HowItWorks {
		printCard(w, c)
	}
	fmt.Fprintln(w)
	printCard(w, SecurityBanner)
}

// UploaderView is what the uploader panel shows.
type UploaderView struct {
	Consent    bool
	DragActive bool
	Busy       bool
	File       *models.PendingFile
}

// ViewOf snapshots wf for printing.
func ViewOf(wf *upload.Workflow) UploaderView {
	return UploaderView{
		Consent:    wf.Consent(),
		DragActive: wf.DragActive(),
		Busy:       wf.State() == upload.Uploading,
		File:       wf.File(),
	}
}

func Uploader(w io.Writer, v UploaderView) {
	fmt.Fprintln(w, "Upload Your Medical Report")
	fmt.Fprintln(w, "We support PDF files up to 10MB from various medical providers.")

	box := "[ ]"
	if v.Consent {
		box = "[x]"
	}
	fmt.Fprintf(w, "  %s %s\n", box, consentText)

	switch {
	case !v.Consent:
		fmt.Fprintln(w, "  (consent required before selecting a file)")
	case v.DragActive:
		fmt.Fprintln(w, "  >> release to drop your PDF <<")
	default:
		fmt.Fprintln(w, "  Drop your PDF with 'drop <path>' or choose it with 'select <path>'. Maximum file size: 10MB")
	}

	if v.File != nil {
		fmt.Fprintf(w, "  📄 %s (%s)\n", v.File.Name, upload.FormatSize(v.File.Size))
		if v.Busy {
			fmt.Fprintln(w, "  Uploading...")
		} else {
			fmt.Fprintln(w, "  Type 'upload' to send it.")
		}
	}
	fmt.Fprintln(w, "Your data is securely encrypted and transmitted according to HIPAA standards.")
}

// HowItWorksText renders the how-it-works cards alone.
func HowItWorksText() string {
	var sb strings.Builder
	sb.WriteString("How It Works\n")
	for _, c := range HowItWorks {
		printCard(&sb, c)
	}
	return sb.String()
}
