package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provhub/provctl/internal/api"
	"github.com/provhub/provctl/internal/authz"
	"github.com/provhub/provctl/internal/session"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your role's dashboard",
	Long: `The post-login landing view. Admins see platform totals, reviewers see
the review queue, applicants see their own applications.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	mgr, err := getSession()
	if err != nil {
		return err
	}

	id := mgr.Identity()
	route := authz.DefaultRouteFor(mgr.Role())
	if err := requireRoute(mgr, route); err != nil {
		return err
	}

	ctx := context.Background()
	switch {
	case mgr.IsAdmin():
		return adminDashboard(ctx, mgr, id)
	case mgr.IsReviewer():
		return reviewerDashboard(ctx, mgr, id)
	default:
		return applicantDashboard(ctx, mgr, id)
	}
}

func adminDashboard(ctx context.Context, mgr *session.Manager, id *session.Identity) error {
	client := mgr.Client()

	apps, err := client.Applications.List(ctx)
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to load dashboard data, please retry")
	}
	users, err := client.Users.List(ctx)
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to load dashboard data, please retry")
	}
	providers, err := client.Providers.List(ctx)
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to load dashboard data, please retry")
	}

	counts := countByStatus(apps)

	if jsonOut {
		return printJSON(map[string]interface{}{
			"route":        authz.RouteAdminDashboard,
			"users":        len(users),
			"providers":    len(providers),
			"applications": counts,
		})
	}

	printDashboardHeader(id, authz.RouteAdminDashboard)
	fmt.Printf("  Users:     %d\n", len(users))
	fmt.Printf("  Providers: %d\n", len(providers))
	printStatusCounts(counts)
	return nil
}

func reviewerDashboard(ctx context.Context, mgr *session.Manager, id *session.Identity) error {
	apps, err := mgr.Client().Applications.List(ctx)
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to load dashboard data, please retry")
	}

	counts := countByStatus(apps)
	pending := counts[api.StatusPending] + counts[api.StatusUnderReview]

	if jsonOut {
		return printJSON(map[string]interface{}{
			"route":        authz.RouteReviewerDashboard,
			"queue":        pending,
			"applications": counts,
		})
	}

	printDashboardHeader(id, authz.RouteReviewerDashboard)
	fmt.Printf("  Awaiting review: %d\n", pending)
	printStatusCounts(counts)
	return nil
}

func applicantDashboard(ctx context.Context, mgr *session.Manager, id *session.Identity) error {
	userID, ok := mgr.UserID()
	if !ok {
		return errUnidentified()
	}

	apps, err := mgr.Client().Applications.ListByUser(ctx, userID)
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to load dashboard data, please retry")
	}

	counts := countByStatus(apps)

	if jsonOut {
		return printJSON(map[string]interface{}{
			"route":        authz.RouteApplicantDashboard,
			"applications": counts,
			"total":        len(apps),
		})
	}

	printDashboardHeader(id, authz.RouteApplicantDashboard)
	fmt.Printf("  Your applications: %d\n", len(apps))
	printStatusCounts(counts)
	return nil
}

func countByStatus(apps []api.Application) map[api.ApplicationStatus]int {
	counts := make(map[api.ApplicationStatus]int)
	for _, a := range apps {
		counts[a.Status]++
	}
	return counts
}

func printDashboardHeader(id *session.Identity, route string) {
	fmt.Printf("%s %s (%s)\n\n", colorBold(id.Email), id.Role.Format(), route)
}

func printStatusCounts(counts map[api.ApplicationStatus]int) {
	order := []api.ApplicationStatus{
		api.StatusPending, api.StatusUnderReview, api.StatusApproved, api.StatusRejected,
	}
	for _, status := range order {
		if counts[status] > 0 {
			fmt.Printf("  %s: %d\n", formatStatus(status), counts[status])
		}
	}
}
