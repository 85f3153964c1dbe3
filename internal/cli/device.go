package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/spf13/cobra"

	"github.com/signalhub/signalhub/internal/model"
	"github.com/signalhub/signalhub/internal/repository/postgres"
)

var (
	deviceClientID   string
	deviceExternalID string
	deviceIP         string
)

// deviceCmd represents the device command.
var deviceCmd = &cobra.Command{
	Use:     "device",
	Aliases: []string{"d", "devices"},
	Short:   "Manage and list devices",
}

var deviceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a device for a client",
	Run:   runDeviceAdd,
}

var deviceListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List a client's devices",
	Run:     runDeviceList,
}

func runDeviceAdd(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	clientID, err := uuid.FromString(deviceClientID)
	if err != nil {
		fatal(fmt.Errorf("invalid --client: %w", err))
	}

	db, err := openDB(ctx)
	if err != nil {
		fatal(err)
	}
	defer db.Close()

	id, err := uuid.NewV4()
	if err != nil {
		fatal(err)
	}
	d := &model.Device{ID: id, ClientID: clientID, ExternalID: deviceExternalID, IPAddress: deviceIP}
	if err := postgres.NewDeviceRepo(db).Create(ctx, d); err != nil {
		fatal(err)
	}

	fmt.Printf("id:\t%s\n", d.ID)
}

func runDeviceList(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	clientID, err := uuid.FromString(deviceClientID)
	if err != nil {
		fatal(fmt.Errorf("invalid --client: %w", err))
	}

	db, err := openDB(ctx)
	if err != nil {
		fatal(err)
	}
	defer db.Close()

	devices, err := postgres.NewDeviceRepo(db).ListByClient(ctx, clientID)
	if err != nil {
		fatal(err)
	}
	if len(devices) == 0 {
		fmt.Println("No devices found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tEXTERNAL ID\tIP ADDRESS\tCREATED")
	for _, d := range devices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			d.ID,
			d.ExternalID,
			d.IPAddress,
			d.CreatedAt.Format(time.RFC3339),
		)
	}
}

func init() {
	rootCmd.AddCommand(deviceCmd)
	deviceCmd.AddCommand(deviceAddCmd)
	deviceCmd.AddCommand(deviceListCmd)

	deviceAddCmd.Flags().StringVar(&deviceClientID, "client", "", "owning client id")
	deviceAddCmd.Flags().StringVar(&deviceExternalID, "external-id", "", "external device identifier")
	deviceAddCmd.Flags().StringVar(&deviceIP, "ip", "", "device network address")
	_ = deviceAddCmd.MarkFlagRequired("client")
	_ = deviceAddCmd.MarkFlagRequired("external-id")
	_ = deviceAddCmd.MarkFlagRequired("ip")

	deviceListCmd.Flags().StringVar(&deviceClientID, "client", "", "owning client id")
	_ = deviceListCmd.MarkFlagRequired("client")
}
