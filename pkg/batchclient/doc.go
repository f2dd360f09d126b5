// Package batchclient provides the primary entry point for constructing an
// Azure Batch data plane client that implements the batch.Client interface.
//
// It layers configuration, HTTP transport, authentication and caching on top
// of the operation group interfaces and resource types defined in the batch
// package. Most applications import batchclient to build a client, then use
// the returned value to reach the operation groups: Pools(), Jobs(), Tasks(),
// Certificates(), ComputeNodes() and Files().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/batch-client/pkg/batch"
//	  "github.com/fivetwenty-io/batch-client/pkg/batchclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Shared key: the account name is taken from the host when omitted.
//	  cli, err := batchclient.New(ctx, &batch.Config{
//	    BatchURL:   "https://myaccount.westeurope.batch.azure.com",
//	    AccountKey: "base64-key",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  // Or a Microsoft Entra service principal:
//	  cli, err = batchclient.New(ctx, &batch.Config{
//	    BatchURL:     "myaccount.westeurope.batch.azure.com",
//	    TenantID:     "tenant",
//	    ClientID:     "app-id",
//	    ClientSecret: "secret",
//	  })
//
//	  pool, err := cli.Pools().Get(ctx, "pool1", nil)
//	  if batch.IsNotFound(err) { /* ... */ }
//	  _ = pool.Body.AllocationState
//
//	  // Lists are paged; All walks every page.
//	  for job, err := range cli.Jobs().List(ctx, batch.NewListOptions().WithFilter("state eq 'active'")).All(ctx) {
//	    if err != nil { log.Fatal(err) }
//	    log.Println(job.ID)
//	  }
//
//	  // Every list has a non-blocking form that reports each page as it arrives.
//	  future := cli.Tasks().ListAsync(ctx, "job1", nil, batch.ListCallbacks[batch.Task]{
//	    Progress: func(page []batch.Task) bool { return true },
//	  })
//	  tasks, err := future.Wait()
//	}
//
// Configuration
//
// See batch.Config for authentication precedence, retries, rate limiting,
// caching (in memory or a NATS JetStream key/value bucket), OpenTelemetry
// metrics and logging.
//
// Errors
//
// Calls return *batch.ValidationError before anything is sent when a
// required parameter is empty, *batch.TransportError when no response was
// received, *batch.DecodingError when a response did not match its type, and
// *batch.ServiceError for any unexpected status. Use batch.IsNotFound,
// batch.StatusCode and batch.ErrorCode to inspect them.
package batchclient
