// tenantctl es la herramienta de operación del motor de plantillas: permite
// aprovisionar un tenant, clonar la jerarquía entre empresas y consultar el
// estado, sin pasar por la API HTTP. Lee la misma configuración (env/.env)
// que cmd/api.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tu-usuario/helpdesk-pro/internal/application/provisioning"
	"github.com/tu-usuario/helpdesk-pro/internal/domain/template"
	"github.com/tu-usuario/helpdesk-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/helpdesk-pro/pkg/config"
	"github.com/tu-usuario/helpdesk-pro/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tenantctl",
		Short: "Operación del motor de plantillas de tenants",
		Long: `tenantctl aprovisiona tenants del helpdesk (empresa por defecto, jerarquía
Categoría → Subcategoría → Acción y opciones de campo) y clona jerarquías
entre empresas del mismo tenant.`,
	}

	rootCmd.AddCommand(provisionCmd())
	rootCmd.AddCommand(cloneCmd())
	rootCmd.AddCommand(statusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildUseCases abre el pool y arma los casos de uso con la config del entorno.
func buildUseCases(ctx context.Context) (*provisioning.TemplateUseCase, *provisioning.CloneUseCase, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	schemaRepo := postgres.NewSchemaRepository(pool, log)
	templateUC := provisioning.NewTemplateUseCase(
		schemaRepo,
		postgres.NewProvisioningLockRepository(pool),
		postgres.NewCompanyRepository(pool),
		postgres.NewHierarchyRepository(pool),
		postgres.NewFieldOptionRepository(pool),
		template.Default(),
		cfg.Provisioning.Timeout,
		log,
	)
	cloneUC := provisioning.NewCloneUseCase(schemaRepo, postgres.NewTxRunner(pool), cfg.Provisioning.Timeout, log)
	return templateUC, cloneUC, pool.Close, nil
}

func provisionCmd() *cobra.Command {
	var actingUser, companyName, companyEmail, industry string

	cmd := &cobra.Command{
		Use:   "provision <tenant-id>",
		Short: "Aplicar la plantilla por defecto (o personalizada) a un tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			templateUC, _, closePool, err := buildUseCases(ctx)
			if err != nil {
				return err
			}
			defer closePool()

			tenantID := args[0]
			ov := provisioning.TemplateOverrides{
				CompanyName:  companyName,
				CompanyEmail: companyEmail,
				Industry:     industry,
			}
			var out = color.New(color.FgGreen)
			var warn = color.New(color.FgYellow)

			if companyName == "" && companyEmail == "" && industry == "" {
				r, err := templateUC.ApplyDefaultTemplate(ctx, tenantID, actingUser)
				if err != nil {
					return err
				}
				out.Printf("plantilla aplicada: %d categorías, %d subcategorías, %d acciones, %d opciones\n",
					r.Counts.Categories, r.Counts.Subcategories, r.Counts.Actions, r.FieldOptions)
				for _, w := range r.Warnings {
					warn.Printf("  aviso: %s\n", w)
				}
				return nil
			}
			r, err := templateUC.ApplyCustomizedTemplate(ctx, tenantID, actingUser, ov)
			if err != nil {
				return err
			}
			out.Printf("plantilla personalizada aplicada: %d categorías, %d subcategorías, %d acciones, %d opciones\n",
				r.Counts.Categories, r.Counts.Subcategories, r.Counts.Actions, r.FieldOptions)
			for _, w := range r.Warnings {
				warn.Printf("  aviso: %s\n", w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&actingUser, "user", "", "ID del usuario que ejecuta")
	cmd.Flags().StringVar(&companyName, "company-name", "", "Nombre de empresa (plantilla personalizada)")
	cmd.Flags().StringVar(&companyEmail, "company-email", "", "Email de empresa (plantilla personalizada)")
	cmd.Flags().StringVar(&industry, "industry", "", "Industria (plantilla personalizada)")
	return cmd
}

func cloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <tenant-id> <source-company-id> <target-company-id>",
		Short: "Clonar la jerarquía completa de una empresa a otra del mismo tenant",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, cloneUC, closePool, err := buildUseCases(ctx)
			if err != nil {
				return err
			}
			defer closePool()

			r, err := cloneUC.CopyHierarchy(ctx, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			color.Green("%s", r.Summary())
			for _, w := range r.Warnings {
				color.Yellow("  aviso: %s", w)
			}
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <tenant-id>",
		Short: "Consultar si el tenant ya fue aprovisionado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			templateUC, _, closePool, err := buildUseCases(ctx)
			if err != nil {
				return err
			}
			defer closePool()

			applied, err := templateUC.IsTemplateApplied(ctx, args[0])
			if err != nil {
				return err
			}
			if applied {
				color.Green("tenant %s: plantilla aplicada", args[0])
			} else {
				color.Yellow("tenant %s: plantilla NO aplicada", args[0])
			}
			return nil
		},
	}
}
