package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/provhub/provctl/internal/api"
	"github.com/provhub/provctl/internal/authz"
	"github.com/provhub/provctl/internal/session"
)

var applicationsCmd = &cobra.Command{
	Use:     "applications",
	Aliases: []string{"apps"},
	Short:   "Manage business applications",
	Long: `Application commands. Applicants see and submit their own applications;
reviewers and admins work the full review queue.

Examples:
  provctl applications list
  provctl applications submit --business "Acme Ltd" --contact "Jane Doe"
  provctl applications approve 42 --comments "References check out"
  provctl applications reject 42 --comments "Portfolio link is dead"`,
}

var applicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications visible to your role",
	RunE:  runApplicationsList,
}

var applicationsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one application",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationsGet,
}

var applicationsSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a new application",
	RunE:  runApplicationsSubmit,
}

var applicationsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationsApprove,
}

var applicationsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationsReject,
}

func init() {
	applicationsSubmitCmd.Flags().String("business", "", "business name")
	applicationsSubmitCmd.Flags().String("contact", "", "contact person")
	applicationsSubmitCmd.Flags().String("portfolio", "", "portfolio link")
	_ = applicationsSubmitCmd.MarkFlagRequired("business")
	_ = applicationsSubmitCmd.MarkFlagRequired("contact")

	for _, c := range []*cobra.Command{applicationsApproveCmd, applicationsRejectCmd} {
		c.Flags().String("comments", "", "review comments")
	}

	applicationsCmd.AddCommand(applicationsListCmd)
	applicationsCmd.AddCommand(applicationsGetCmd)
	applicationsCmd.AddCommand(applicationsSubmitCmd)
	applicationsCmd.AddCommand(applicationsApproveCmd)
	applicationsCmd.AddCommand(applicationsRejectCmd)

	rootCmd.AddCommand(applicationsCmd)
}

// applicationsRoute picks the route the list view renders under; the
// review queue and the applicant's own list live in different subtrees.
func applicationsRoute(mgr *session.Manager) string {
	switch {
	case mgr.IsAdmin():
		return authz.RouteAdminApplications
	case mgr.IsReviewer():
		return authz.RouteReviewerApplications
	default:
		return authz.RouteApplicantApplications
	}
}

func runApplicationsList(cmd *cobra.Command, args []string) error {
	mgr, err := getSession()
	if err != nil {
		return err
	}
	if err := requireRoute(mgr, applicationsRoute(mgr)); err != nil {
		return err
	}

	ctx := context.Background()
	client := mgr.Client()

	var apps []api.Application
	if mgr.IsApplicant() {
		userID, ok := mgr.UserID()
		if !ok {
			return errUnidentified()
		}
		apps, err = client.Applications.ListByUser(ctx, userID)
	} else {
		apps, err = client.Applications.List(ctx)
	}
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to load applications, please retry")
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"applications": apps, "count": len(apps)})
	}

	if len(apps) == 0 {
		fmt.Println("No applications found")
		return nil
	}

	w := newTable()
	printTableHeader(w, "ID", "BUSINESS", "CONTACT", "STATUS", "CREATED")
	for _, a := range apps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			a.ID,
			truncate(a.BusinessName, 28),
			truncate(a.ContactPerson, 20),
			formatStatus(a.Status),
			a.CreatedAt,
		)
	}
	return w.Flush()
}

func runApplicationsGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid application id %q", args[0])
	}

	mgr, err := getSession()
	if err != nil {
		return err
	}
	if err := requireRoute(mgr, applicationsRoute(mgr)); err != nil {
		return err
	}

	app, err := mgr.Client().Applications.Get(context.Background(), id)
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to load application, please retry")
	}

	if jsonOut {
		return printJSON(app)
	}

	fmt.Printf("ID:        %d\n", app.ID)
	fmt.Printf("Business:  %s\n", app.BusinessName)
	fmt.Printf("Contact:   %s\n", app.ContactPerson)
	fmt.Printf("Status:    %s\n", formatStatus(app.Status))
	if app.PortfolioLink != "" {
		fmt.Printf("Portfolio: %s\n", app.PortfolioLink)
	}
	if app.Comments != "" {
		fmt.Printf("Comments:  %s\n", app.Comments)
	}
	fmt.Printf("Created:   %s\n", app.CreatedAt)
	return nil
}

func runApplicationsSubmit(cmd *cobra.Command, args []string) error {
	mgr, err := getSession()
	if err != nil {
		return err
	}
	if err := requireRoute(mgr, authz.RouteApplicantNewApplication); err != nil {
		return err
	}

	userID, ok := mgr.UserID()
	if !ok {
		return errUnidentified()
	}

	business, _ := cmd.Flags().GetString("business")
	contact, _ := cmd.Flags().GetString("contact")
	portfolio, _ := cmd.Flags().GetString("portfolio")

	app, err := mgr.Client().Applications.Create(context.Background(), userID, api.CreateApplicationRequest{
		BusinessName:  business,
		ContactPerson: contact,
		PortfolioLink: portfolio,
	})
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to submit application")
	}

	if jsonOut {
		return printJSON(app)
	}

	fmt.Printf("%s Application #%d submitted (%s)\n", colorGreen("✓"), app.ID, formatStatus(app.Status))
	return nil
}

func runApplicationsApprove(cmd *cobra.Command, args []string) error {
	return runReviewDecision(cmd, args, true)
}

func runApplicationsReject(cmd *cobra.Command, args []string) error {
	return runReviewDecision(cmd, args, false)
}

func runReviewDecision(cmd *cobra.Command, args []string, approve bool) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid application id %q", args[0])
	}

	mgr, err := getSession()
	if err != nil {
		return err
	}

	route := authz.RouteReviewerApplications
	if mgr.IsAdmin() {
		route = authz.RouteAdminApplications
	}
	if err := requireRoute(mgr, route); err != nil {
		return err
	}

	comments, _ := cmd.Flags().GetString("comments")
	ctx := context.Background()
	client := mgr.Client()

	var app *api.Application
	if approve {
		app, err = client.Applications.Approve(ctx, id, comments)
	} else {
		app, err = client.Applications.Reject(ctx, id, comments)
	}
	if err != nil {
		printError(err)
		return fmt.Errorf("review update failed")
	}

	if jsonOut {
		return printJSON(app)
	}

	verb := "approved"
	if !approve {
		verb = "rejected"
	}
	fmt.Printf("%s Application #%d %s (%s)\n", colorGreen("✓"), app.ID, verb, formatStatus(app.Status))
	return nil
}

func formatStatus(status api.ApplicationStatus) string {
	switch status {
	case api.StatusApproved:
		return colorGreen(string(status))
	case api.StatusRejected:
		return colorRed(string(status))
	case api.StatusUnderReview:
		return colorYellow(string(status))
	default:
		return string(status)
	}
}

func errUnidentified() error {
	return fmt.Errorf("unable to identify user, please log in again (provctl login)")
}
