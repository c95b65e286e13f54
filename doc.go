// Package cvpdf writes résumé profiles as PDF documents.
//
// # Quick Start
//
// Create a serializer, generate, and close when done:
//
//	s, err := cvpdf.New(cvpdf.EngineNative)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	res, err := s.Generate(ctx, &cvpdf.Profile{
//	    Name:     "Jane Doe",
//	    Headline: "Program Director",
//	}, cvpdf.Destination{Dir: "out"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Path) // out/Jane_Doe_CV.pdf
//
// The document is rendered in memory and written with a temp-file rename, so
// a failed generation never leaves a partial file behind. Sections without
// data are left out and listed in Result.Omitted.
//
// # Engines
//
// EngineNative lays the profile out as text lines, paginates them and
// assembles the object graph and cross-reference table itself. It needs no
// external processes and one instance can be shared by goroutines.
//
// EngineBrowser renders a Markdown template, converts it to styled HTML with
// Goldmark and prints it with headless Chrome (go-rod). The output is checked
// with pdfcpu before it is written.
//
// # Configuration
//
// Use functional options to customize a serializer:
//
//	s, err := cvpdf.New(cvpdf.EngineBrowser,
//	    cvpdf.WithPage(cvpdf.PageSettings{Size: "letter", Margin: 0.5}),
//	    cvpdf.WithLimits(cvpdf.Limits{Achievements: 3, Certifications: 6, Skills: 12}),
//	    cvpdf.WithStyle("compact"),
//	    cvpdf.WithTimestamp("YYYYMMDD"),
//	)
//
// # Parallel Processing
//
// For batches, SerializerPool hands out serializers to workers:
//
//	pool := cvpdf.NewSerializerPool(cvpdf.EngineBrowser, 4)
//	defer pool.Close()
//
//	s, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(s)
//
// # Browser Requirements
//
// The browser engine requires Chrome/Chromium. The go-rod library downloads
// a managed Chromium on first run (~/.cache/rod/browser/). Use
// ROD_BROWSER_BIN to select a preinstalled binary.
package cvpdf
