// castviz serves the linked cast views over HTTP, and optionally gRPC.
package main

import(
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"google.golang.org/grpc"

	"github.com/skypies/castviz"
	"github.com/skypies/castviz/app/frontend"
	"github.com/skypies/castviz/app/rpc"
	"github.com/skypies/castviz/backend"
	"github.com/skypies/castviz/config"
	"github.com/skypies/castviz/viz"
)

var(
	fConfig string
	fListen string
	fGRPC   string
	fDir    string
	fYear   int
	fMonth  int
)

func init() {
	flag.StringVar(&fConfig, "config", "", "yaml config file (defaults used if blank)")
	flag.StringVar(&fListen, "listen", "", "http address, overrides config")
	flag.StringVar(&fGRPC, "grpc", "", "grpc address, overrides config")
	flag.StringVar(&fDir, "dir", "", "read data files from this directory, overrides config source")
	flag.IntVar(&fYear, "year", 0, "initial year, overrides config")
	flag.IntVar(&fMonth, "month", -1, "initial month (0 for all), overrides config")
	flag.Parse()
}

func loadConfig() config.Config {
	cfg,err := config.Load(fConfig)
	if err != nil { log.Fatal(err) }

	if fListen != "" { cfg.Listen = fListen }
	if fGRPC != "" { cfg.GRPC = fGRPC }
	if fDir != "" { cfg.Source = config.Source{Kind:"dir", Root:fDir} }
	if fYear > 0 { cfg.Initial.Year = fYear }
	if fMonth >= 0 { cfg.Initial.Month = fMonth }

	if err := cfg.Validate(); err != nil { log.Fatal(err) }
	return cfg
}

func main() {
	ctx,stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := loadConfig()

	src,err := cfg.Source.Open(ctx)
	if err != nil { log.Fatal(err) }
	log.Printf("castviz: reading from %s", src)

	v := viz.New(backend.Loader{Source:src, Names:cfg.Names}, viz.Options{
		Title:  cfg.Title,
		Layout: cfg.Layout,
		Style:  cfg.UIStyle(),
		Years:  cfg.Years,
	})
	region,_ := cfg.Initial.Rect() // already validated
	v.SetInitial(region, castviz.Month(cfg.Initial.Month))

	// Serve straight away; everything but /year and /health is a 503 until this lands
	go func() {
		if err := v.Load(ctx, cfg.Initial.Year); err != nil {
			log.Printf("ERROR: initial load: %v", err)
		}
	}()

	if cfg.GRPC != "" {
		lis,err := net.Listen("tcp", cfg.GRPC)
		if err != nil { log.Fatal(err) }
		gs := grpc.NewServer()
		rpc.Register(gs, rpc.Server{Viz:v})
		go func() {
			log.Printf("castviz: grpc on %s", cfg.GRPC)
			if err := gs.Serve(lis); err != nil { log.Printf("ERROR: grpc: %v", err) }
		}()
		defer gs.GracefulStop()
	}

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: frontend.Server{Viz:v, Years:cfg.Years}.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx,cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("castviz: http on %s", cfg.Listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
