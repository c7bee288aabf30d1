package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/echallan/enforcement-platform/pkg/client"
)

func runLogin(cctx *commandContext, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: echallan login <identifier> <password>")
	}

	result := cctx.auth.Login(cctx.ctx, args[0], args[1])
	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}
	fmt.Printf("logged in as %s (%s)\n", cctx.auth.Identity().Name, result.Role)
	return nil
}

func runLogout(cctx *commandContext, _ []string) error {
	cctx.auth.Logout()
	fmt.Println("logged out")
	return nil
}

func runWhoami(cctx *commandContext, _ []string) error {
	id := cctx.auth.Identity()
	fmt.Printf("%s (%s)\n", id.Name, id.Role)
	return nil
}

type violationRow struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Plate     string  `json:"plate"`
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Location  string  `json:"location"`
	Fine      float64 `json:"fine"`
	OwnerName string  `json:"owner_name,omitempty"`
}

func printViolations(rows []violationRow, withOwner bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if withOwner {
		fmt.Fprintln(w, "ID\tPLATE\tTYPE\tSTATUS\tFINE\tOWNER\tWHEN")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%s\t%s\n",
				r.ID, r.Plate, r.Type, r.Status, r.Fine, r.OwnerName, r.Timestamp)
		}
	} else {
		fmt.Fprintln(w, "ID\tPLATE\tTYPE\tSTATUS\tFINE\tWHEN")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%s\n",
				r.ID, r.Plate, r.Type, r.Status, r.Fine, r.Timestamp)
		}
	}
	w.Flush()
}

func runViolations(cctx *commandContext, _ []string) error {
	var rows []violationRow
	if err := cctx.api.Get(cctx.ctx, "/api/violations", &rows); err != nil {
		return err
	}
	printViolations(rows, false)
	return nil
}

func runChallans(cctx *commandContext, _ []string) error {
	// The same command serves both dashboards; the role picks the endpoint.
	if cctx.auth.Identity().Role == client.RoleAdmin {
		var rows []violationRow
		if err := cctx.api.Get(cctx.ctx, "/api/admin/challans", &rows); err != nil {
			return err
		}
		printViolations(rows, true)
		return nil
	}

	var rows []violationRow
	if err := cctx.api.Get(cctx.ctx, "/api/user/challans", &rows); err != nil {
		return err
	}
	printViolations(rows, false)
	return nil
}

func runCameras(cctx *commandContext, _ []string) error {
	var cams []struct {
		ID         string `json:"id"`
		Location   string `json:"location"`
		Status     string `json:"status"`
		LastActive string `json:"last_active"`
	}
	if err := cctx.api.Get(cctx.ctx, "/api/admin/cameras", &cams); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLOCATION\tSTATUS\tLAST ACTIVE")
	for _, c := range cams {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Location, c.Status, c.LastActive)
	}
	return w.Flush()
}

func runStream(cctx *commandContext, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: echallan stream <camera-id>")
	}

	var info struct {
		CameraID  string `json:"camera_id"`
		Location  string `json:"location"`
		StreamURL string `json:"stream_url"`
		Status    string `json:"status"`
	}
	if err := cctx.api.Get(cctx.ctx, "/api/admin/camera/"+args[0]+"/stream", &info); err != nil {
		return err
	}
	fmt.Printf("%s (%s, %s)\n%s\n", info.CameraID, info.Location, info.Status, info.StreamURL)
	return nil
}

func runStats(cctx *commandContext, _ []string) error {
	var stats struct {
		TotalViolations  int64   `json:"total_violations"`
		Pending          int64   `json:"pending"`
		Processed        int64   `json:"processed"`
		Paid             int64   `json:"paid"`
		RevenueCollected float64 `json:"revenue_collected"`
		TotalCameras     int64   `json:"total_cameras"`
		ActiveCameras    int64   `json:"active_cameras"`
		RegisteredUsers  int64   `json:"registered_users"`
	}
	if err := cctx.api.Get(cctx.ctx, "/api/admin/statistics", &stats); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "violations\t%d (pending %d, processed %d, paid %d)\n",
		stats.TotalViolations, stats.Pending, stats.Processed, stats.Paid)
	fmt.Fprintf(w, "revenue\t₹%.2f\n", stats.RevenueCollected)
	fmt.Fprintf(w, "cameras\t%d (%d active)\n", stats.TotalCameras, stats.ActiveCameras)
	fmt.Fprintf(w, "citizens\t%d\n", stats.RegisteredUsers)
	return w.Flush()
}

func runPay(cctx *commandContext, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: echallan pay <challan-id>")
	}

	var resp struct {
		Message string `json:"message"`
		Payment struct {
			Amount         float64 `json:"amount"`
			TransactionRef string  `json:"transaction_ref"`
		} `json:"payment"`
	}
	err := cctx.api.Post(cctx.ctx, "/api/user/pay-challan",
		map[string]string{"challan_id": args[0]}, &resp)
	if err != nil {
		return err
	}
	fmt.Printf("%s: ₹%.2f (%s)\n", resp.Message, resp.Payment.Amount, resp.Payment.TransactionRef)
	return nil
}

func runPayments(cctx *commandContext, _ []string) error {
	var rows []struct {
		ViolationID    string  `json:"violation_id"`
		Amount         float64 `json:"amount"`
		TransactionRef string  `json:"transaction_ref"`
		PaymentDate    string  `json:"payment_date"`
		Status         string  `json:"status"`
	}
	if err := cctx.api.Get(cctx.ctx, "/api/user/payments", &rows); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHALLAN\tAMOUNT\tREF\tDATE\tSTATUS")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.0f\t%s\t%s\t%s\n",
			r.ViolationID, r.Amount, r.TransactionRef, r.PaymentDate, r.Status)
	}
	return w.Flush()
}

func runProfile(cctx *commandContext, args []string) error {
	if len(args) == 2 {
		body := map[string]string{"email": args[0], "phone_number": args[1]}
		var resp struct {
			Message string `json:"message"`
		}
		if err := cctx.api.Put(cctx.ctx, "/api/user/profile", body, &resp); err != nil {
			return err
		}
		fmt.Println(resp.Message)
		return nil
	}
	if len(args) != 0 {
		return fmt.Errorf("usage: echallan profile [<email> <phone>]")
	}

	var p struct {
		FirstName     string `json:"first_name"`
		LastName      string `json:"last_name"`
		Email         string `json:"email"`
		PhoneNumber   string `json:"phone_number"`
		VehicleNumber string `json:"vehicle_number"`
		MemberSince   string `json:"member_since"`
	}
	if err := cctx.api.Get(cctx.ctx, "/api/user/profile", &p); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "name\t%s %s\n", p.FirstName, p.LastName)
	fmt.Fprintf(w, "email\t%s\n", p.Email)
	fmt.Fprintf(w, "phone\t%s\n", p.PhoneNumber)
	fmt.Fprintf(w, "vehicle\t%s\n", p.VehicleNumber)
	fmt.Fprintf(w, "member since\t%s\n", p.MemberSince)
	return w.Flush()
}

func runSupport(cctx *commandContext, args []string) error {
	if len(args) >= 2 {
		body := map[string]string{
			"subject":     args[0],
			"description": strings.Join(args[1:], " "),
		}
		var ticket struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		if err := cctx.api.Post(cctx.ctx, "/api/user/support", body, &ticket); err != nil {
			return err
		}
		fmt.Printf("ticket %s created (%s)\n", ticket.ID, ticket.Status)
		return nil
	}
	if len(args) != 0 {
		return fmt.Errorf("usage: echallan support [<subject> <description...>]")
	}

	var rows []struct {
		ID        string `json:"id"`
		Subject   string `json:"subject"`
		Status    string `json:"status"`
		CreatedAt string `json:"created_at"`
	}
	if err := cctx.api.Get(cctx.ctx, "/api/user/support", &rows); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSUBJECT\tSTATUS\tCREATED")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Subject, r.Status, r.CreatedAt)
	}
	return w.Flush()
}
