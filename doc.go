// Package confinode finds and loads an application's configuration file.
//
// Starting from a directory, the engine walks up through the parent
// directories until it finds a file matching one of its file descriptions,
// parses it with the loader registered for its suffix and hands the raw
// document to a Description for typed parsing.
//
// Quick Start:
//
//	type Config struct {
//	    Port int    `conf:"default:8080,min:1024"`
//	    Host string `conf:"required"`
//	}
//
//	finder := confinode.New[Config]("myapp", description.Struct[Config]())
//	result := finder.Search(ctx, "")        // blocking
//	future := finder.SearchAsync(ctx, "")   // non-blocking, result := future.Wait()
//
// With the default file descriptions the cascade looks, in each directory, for
// the "myapp" key of package.json, .myapprc (YAML), .myapprc.<ext> and
// myapp.config.<ext>, where <ext> is any suffix known to the loader registry.
//
// Search and Load never return errors: problems are reported through the
// configured logging.Logger and absence of configuration is a nil result.
// A Confinode is not safe for concurrent use; serialize calls that share one.
package confinode
