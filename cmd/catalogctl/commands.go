package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aradovic23/drinks-viewer/internal/cfg"
	"github.com/aradovic23/drinks-viewer/internal/client"
	"github.com/aradovic23/drinks-viewer/internal/client/rest"
	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/pkg/logger"
	"github.com/spf13/cobra"
)

// app связывает клиентский слой каталога для команд CLI.
type app struct {
	cfg      *cfg.ClientCfg
	store    *client.CatalogStore
	manager  *client.MutationManager
	binder   *client.FormBinder
	gateway  client.Gateway
	role     domain.ViewerRole
	notifier *terminalNotifier
}

func newApp(cmd *cobra.Command) (*app, error) {
	clientCfg, err := cfg.LoadClientCfg()
	if err != nil {
		return nil, err
	}

	log := logger.NewSlogLogger()
	gateway := rest.NewGateway(clientCfg)
	store := client.NewCatalogStore(gateway, log, clientCfg.FetchTimeout)
	notifier := &terminalNotifier{cmd: cmd}

	return &app{
		cfg:      clientCfg,
		store:    store,
		manager:  client.NewMutationManager(store, gateway, notifier, clientCfg.MutationTimeout, clientCfg.NotificationTTL),
		binder:   client.NewFormBinder(),
		gateway:  gateway,
		role:     domain.ParseViewerRole(clientCfg.Role),
		notifier: notifier,
	}, nil
}

// terminalNotifier печатает уведомления об исходах мутаций в терминал.
type terminalNotifier struct {
	cmd *cobra.Command
}

func (t *terminalNotifier) Success(n client.Notification) {
	fmt.Fprintf(t.cmd.OutOrStdout(), "%s %q: done\n", n.Action, n.ItemTitle)
}

func (t *terminalNotifier) Error(n client.Notification) {
	fmt.Fprintf(t.cmd.ErrOrStderr(), "%s %q failed: %s\n", n.Action, n.ItemTitle, n.Message)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Catalog browser and moderation tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newCreateCmd(),
		newUpdateCmd(),
		newModerationCmd("delete", "Delete a product", client.ActionDelete),
		newModerationCmd("hide", "Hide a product from non-admin viewers", client.ActionHide),
		newModerationCmd("recommend", "Mark a product as recommended", client.ActionRecommend),
		newCategoriesCmd(),
		newImagesCmd(),
	)

	return root
}

func newListCmd() *cobra.Command {
	var categoryID int64
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			snap, err := a.store.FetchAll(cmd.Context())
			if err != nil {
				return err
			}

			filtered := client.ApplyFilter(snap.Products, client.FilterState{
				SelectedCategoryID: categoryID,
				SearchTerm:         search,
			})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRICE\tBADGES\tFLAGS")
			for i := range filtered {
				category, _ := snap.CategoryByID(filtered[i].CategoryID)
				view := client.NewProductView(&filtered[i], category, a.role)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					view.Product.ID,
					view.Product.Title,
					view.Product.Price,
					formatBadges(view),
					formatFlags(&view.Product),
				)
			}
			w.Flush()

			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d products\n", len(filtered), len(snap.Products))
			return nil
		},
	}

	cmd.Flags().Int64Var(&categoryID, "category", client.AllCategories, "filter by category id (0 = all)")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive title search")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			product, err := a.gateway.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			snap, err := a.store.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			category, _ := snap.CategoryByID(product.CategoryID)
			view := client.NewProductView(product, category, a.role)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:       %s\n", view.Product.Title)
			fmt.Fprintf(out, "Price:       %s\n", view.Product.Price)
			fmt.Fprintf(out, "Image:       %s\n", view.EffectiveImage)
			if view.ShowVolumeBadge {
				fmt.Fprintf(out, "Volume:      %s\n", view.Product.Volume)
			}
			if view.ShowTypeBadge {
				fmt.Fprintf(out, "Type:        %s\n", view.Product.Type)
			}
			if view.ShowTagBadge {
				fmt.Fprintf(out, "Tag:         %s\n", view.Product.Tag)
			}
			if view.Product.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", view.Product.Description)
			}
			if len(view.AdminActions) > 0 {
				fmt.Fprintf(out, "Actions:     %s\n", formatActions(view.AdminActions))
			}
			return nil
		},
	}
}

func newCreateCmd() *cobra.Command {
	payload := &client.ProductPayload{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			snap, err := a.store.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			category, ok := snap.CategoryByID(payload.CategoryID)
			if !ok && payload.CategoryID != 0 {
				return fmt.Errorf("unknown category %d", payload.CategoryID)
			}

			bound, err := a.binder.Bind(payload, category)
			if err != nil {
				return err
			}

			coordinator := a.manager.For("", bound.Title, client.ActionCreate)
			return coordinator.SubmitCreate(cmd.Context(), bound)
		},
	}

	cmd.Flags().StringVar(&payload.Title, "title", "", "product title (required)")
	cmd.Flags().StringVar(&payload.Price, "price", "", "price (required)")
	cmd.Flags().StringVar(&payload.Volume, "volume", "", "volume label")
	cmd.Flags().StringVar(&payload.Tag, "tag", "", "tag badge")
	cmd.Flags().StringVar(&payload.Type, "type", "", "product type")
	cmd.Flags().StringVar(&payload.Description, "description", "", "description")
	cmd.Flags().StringVar(&payload.ImageURL, "image-url", "", "image URL")
	cmd.Flags().Int64Var(&payload.CategoryID, "category", 0, "category id (required)")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var title, price, volume, tag, typ, description, imageURL string
	var categoryID int64

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update product fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			patch := &client.ProductPatch{}
			set := func(flag string, dst **string, v *string) {
				if cmd.Flags().Changed(flag) {
					*dst = v
				}
			}
			set("title", &patch.Title, &title)
			set("price", &patch.Price, &price)
			set("volume", &patch.Volume, &volume)
			set("tag", &patch.Tag, &tag)
			set("type", &patch.Type, &typ)
			set("description", &patch.Description, &description)
			set("image-url", &patch.ImageURL, &imageURL)
			if cmd.Flags().Changed("category") {
				patch.CategoryID = &categoryID
			}

			product, err := a.gateway.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			coordinator := a.manager.For(product.ID, product.Title, client.ActionUpdate)
			return coordinator.SubmitUpdate(cmd.Context(), patch)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&price, "price", "", "new price")
	cmd.Flags().StringVar(&volume, "volume", "", "new volume label")
	cmd.Flags().StringVar(&tag, "tag", "", "new tag")
	cmd.Flags().StringVar(&typ, "type", "", "new type")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "new image URL")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "new category id")
	return cmd
}

// newModerationCmd строит команду для одностороннего действия с подтверждением.
func newModerationCmd(use, short string, kind client.ActionKind) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			product, err := a.gateway.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			coordinator := a.manager.For(product.ID, product.Title, kind)
			if err := coordinator.Open(); err != nil {
				return err
			}

			if !yes && !askConfirmation(cmd, fmt.Sprintf("%s %q?", kind, product.Title)) {
				return coordinator.Cancel()
			}

			return coordinator.Confirm(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			snap, err := a.store.FetchAll(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE FIELD\tDESCRIPTION FIELD")
			for _, c := range snap.Categories {
				fmt.Fprintf(w, "%d\t%s\t%v\t%v\n", c.ID, c.Name, c.SupportsType, c.SupportsDescription)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(newCategoriesCreateCmd())
	return cmd
}

func newCategoriesCreateCmd() *cobra.Command {
	payload := &client.CategoryPayload{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			category, err := a.gateway.CreateCategory(cmd.Context(), payload)
			if err != nil {
				return err
			}

			a.store.Invalidate()
			fmt.Fprintf(cmd.OutOrStdout(), "category %q created with id %d\n", category.Name, category.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&payload.Name, "name", "", "category name (required)")
	cmd.Flags().BoolVar(&payload.SupportsType, "supports-type", false, "products carry a type field")
	cmd.Flags().BoolVar(&payload.SupportsDescription, "supports-description", false, "products carry description and image fields")
	cmd.Flags().StringVar(&payload.DefaultImageURL, "default-image", "", "fallback image URL")
	return cmd
}

func newImagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "images <term>",
		Short: "Search product images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.FetchTimeout)
			defer cancel()

			images, err := a.gateway.SearchImages(ctx, args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTHUMBNAIL\tFULL")
			for _, img := range images {
				fmt.Fprintf(w, "%s\t%s\t%s\n", img.ID, img.ThumbnailURL, img.FullURL)
			}
			return w.Flush()
		},
	}
}

func askConfirmation(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)

	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func formatBadges(view *client.ProductView) string {
	var badges []string
	if view.ShowVolumeBadge {
		badges = append(badges, view.Product.Volume)
	}
	if view.ShowTypeBadge {
		badges = append(badges, view.Product.Type)
	}
	if view.ShowTagBadge {
		badges = append(badges, view.Product.Tag)
	}
	if len(badges) == 0 {
		return "-"
	}
	return strings.Join(badges, ", ")
}

func formatFlags(product *domain.Product) string {
	var flags []string
	if product.IsHidden {
		flags = append(flags, "hidden")
	}
	if product.IsRecommended {
		flags = append(flags, "recommended")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ", ")
}

func formatActions(actions []client.AdminAction) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		if a.Enabled {
			parts = append(parts, string(a.Kind))
		} else {
			parts = append(parts, string(a.Kind)+" (disabled)")
		}
	}
	return strings.Join(parts, ", ")
}
