// Package readiness renders study-abroad readiness assessment results
// into branded PDF reports using headless Chrome.
//
// # Quick Start
//
// Create a service, generate a report, and close when done:
//
//	svc := readiness.New()
//	defer svc.Close()
//
//	result, err := readiness.ParseAssessmentResult(body)
//	if err != nil {
//	    // readiness.ErrMissingStudentName on missing/blank name
//	}
//
//	report, err := svc.GenerateReport(ctx, *result)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(report.Filename, report.Body, 0644)
//
// GenerateReport returns a Report carrying either PDF bytes or, when
// Chrome fails to rasterize the page, a simplified HTML document with
// Report.Fallback set. Both are meant to be served as downloadable
// attachments; Report.Filename and Report.ContentType are pre-computed.
//
// # Report Pipeline
//
// Generation follows these stages:
//
//  1. Input validation (student name is the only required field)
//  2. HTML assembly (score cards, country-fit ranking, narrative
//     sections rendered from Markdown via Goldmark)
//  3. PDF rendering via headless Chrome (go-rod), A4 with print
//     backgrounds
//  4. Degradation to a simplified HTML attachment if rendering fails
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := readiness.New(
//	    readiness.WithTimeout(time.Minute),
//	    readiness.WithOrganization("Acme Study Abroad"),
//	    readiness.WithDateFormat("long"),
//	)
//
// # Parallel Processing
//
// Each Service owns one browser instance. Servers handling concurrent
// requests should use ServicePool, which bounds the number of Chrome
// processes and queues callers:
//
//	pool := readiness.NewServicePool(readiness.ResolvePoolSize(0))
//	defer pool.Close()
//
//	svc, err := pool.AcquireContext(ctx)
//	if err != nil {
//	    return err // caller gave up while queued
//	}
//	defer pool.Release(svc)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library
// automatically downloads a managed Chromium instance on first run
// (~/.cache/rod/browser/). Use ROD_BROWSER_BIN to point at a
// pre-installed binary in containers.
package readiness
