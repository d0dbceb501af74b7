// Package dataprocessing turns a yield-components source file into the
// canonical dataset served by the dashboard.
//
// # Stages
//
// A Pipeline runs five stages in fixed order:
//
//  1. LoadTable reads the file (BOM-tolerant UTF-8 CSV, or the first sheet of
//     an .xlsx workbook) into a Table.
//  2. ValidateSchema checks that every required Hebrew-labeled column exists
//     and reports all missing columns at once.
//  3. ResolveLiquidity derives the liquid/illiquid label of every row from
//     its investment channel.
//  4. MapRecords renames columns to the canonical English schema and coerces
//     numeric cells, turning anything unparsable into null.
//  5. Sanitize and Summarize null any remaining NaN/Infinity and build the
//     filter metadata.
//
// # Usage
//
//	p := dataprocessing.NewPipeline(logger)
//	res, err := p.Run(ctx, "output/yields.csv")
//	if err != nil {
//	    // errors.Is(err, dataprocessing.ErrSourceNotFound), ErrSchema, ...
//	}
//	fmt.Println(res.Meta.TotalRows)
//
// # Error Handling
//
// Only three conditions fail a run: a missing source (ErrSourceNotFound), a
// missing required column (*SchemaError, matching ErrSchema) and a file that
// cannot be parsed at all (ErrMalformedSource). Bad values never fail a run;
// they become null and are counted in Result.Stats.
package dataprocessing
