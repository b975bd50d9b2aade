package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Jeffail/gabs"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	echoMiddleware "github.com/labstack/echo/middleware"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"varq/api/contexts"
	gam "varq/api/middleware"
	"varq/api/models"
	filtersMvc "varq/api/mvc/filters"
	variantsMvc "varq/api/mvc/variants"
	"varq/api/repositories/mongodb"
	casesService "varq/api/services/cases"
	filtersService "varq/api/services/filters"
	genesService "varq/api/services/genes"
	institutesService "varq/api/services/institutes"
	variantsService "varq/api/services/variants"
	"varq/api/utils"
)

func main() {
	app := &cli.App{
		Name:  "varq",
		Usage: "clinical variant query engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "optional yaml config overlaying the environment",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the variant query http api",
				Action: serve,
			},
			{
				Name:  "compile",
				Usage: "compile a filter dict from stdin into a store query on stdout",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "institute",
						Usage: "institute whose soft filters apply",
					},
				},
				Action: compile,
			},
		},
		// bare invocation behaves like 'serve'
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cliCtx *cli.Context) (*models.Config, error) {
	var cfg models.Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if configPath := cliCtx.String("config"); configPath != "" {
		if err := cfg.OverlayYamlFile(configPath); err != nil {
			return nil, fmt.Errorf("reading config %s : %w", configPath, err)
		}
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

func createLogger(cfg *models.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func serve(cliCtx *cli.Context) error {
	cfg, err := loadConfig(cliCtx)
	if err != nil {
		return err
	}

	logger := createLogger(cfg)
	logger.Info().
		Str("port", cfg.Api.Port).
		Str("mongoUrl", cfg.Mongo.Url).
		Str("database", cfg.Mongo.Database).
		Str("genomeBuild", cfg.Query.GenomeBuild).
		Bool("debug", cfg.Debug).
		Msg("starting variant query api")

	// Service Connections:
	// -- MongoDB
	mongoClient, connErr := utils.CreateMongoConnection(cfg, logger)
	if connErr != nil {
		return connErr
	}
	repository := mongodb.NewRepository(mongoClient, cfg)

	// Service Singletons
	institutes := institutesService.NewInstituteService(repository, cfg, logger)
	genes := genesService.NewGeneService(repository, cfg)
	cases := casesService.NewCaseService(repository)
	variants := variantsService.NewVariantService(repository, genes, cases, institutes, cfg, logger)
	filters := filtersService.NewFilterService(repository)

	// Instantiate Server
	e := echo.New()

	// Configure Server
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
	}))

	// -- Override handlers with "custom varq" context
	//		to be able to provide the service singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.VarqContext{
				Context:        c,
				Config:         cfg,
				VariantService: variants,
				FilterService:  filters,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "varq",
			"message": "Welcome to the varq variant query api!",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	// -- Variants
	e.POST("/variants/query", variantsMvc.VariantsQuery)
	e.POST("/variants/compile", variantsMvc.VariantsCompile)
	e.GET("/variants/overlapping/:documentId", variantsMvc.VariantsOverlapping)

	// -- Saved Filters
	e.GET("/filters", filtersMvc.FilterStashList,
		// middleware
		gam.MandateInstituteAttribute,
		gam.ValidateOptionalCategoryAttribute)
	e.POST("/filters", filtersMvc.FilterStashCreate)
	e.GET("/filters/:filterId", filtersMvc.FilterStashGet)
	e.DELETE("/filters/:filterId", filtersMvc.FilterStashDelete)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
	return nil
}

// compile reads a filter dict from stdin and prints the compiled store
// query, so pipelines can inspect queries without a running store.
func compile(cliCtx *cli.Context) error {
	cfg, err := loadConfig(cliCtx)
	if err != nil {
		return err
	}

	logger := createLogger(cfg)

	body, readErr := io.ReadAll(os.Stdin)
	if readErr != nil {
		return readErr
	}

	parsed, parseErr := gabs.ParseJSON(body)
	if parseErr != nil {
		return fmt.Errorf("parsing filter dict : %w", parseErr)
	}

	dict, castOk := parsed.Data().(map[string]interface{})
	if !castOk {
		return fmt.Errorf("filter dict must be a json object")
	}

	// the offline compiler has no store behind it : genes, cases and
	// soft filters resolve through an empty repository-less service
	// set, so reference-data criteria are compiled as-declared
	compiler := offlineCompiler(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rendered, warnings, compileErr := compiler.BuildQuery(ctx, dict, cliCtx.String("institute"))
	if compileErr != nil {
		return compileErr
	}

	for _, warning := range warnings {
		logger.Warn().Msg(warning)
	}

	output := gabs.New()
	output.Set(rendered, "query")
	if len(warnings) > 0 {
		output.Set(warnings, "warnings")
	}

	fmt.Println(output.StringIndent("", "  "))
	return nil
}

func offlineCompiler(cfg *models.Config, logger zerolog.Logger) *variantsService.VariantService {
	stores := &offlineStores{}

	institutes := &institutesService.InstituteService{
		Initialized: true,
		Store:       stores,
		Config:      cfg,
		Logger:      logger,
	}

	return variantsService.NewVariantService(
		stores,
		genesService.NewGeneService(stores, cfg),
		casesService.NewCaseService(stores),
		institutes,
		cfg,
		logger,
	)
}
