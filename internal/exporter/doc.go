// Package exporter renders scan results into the Camarilla report
// workbook.
//
// The workbook mirrors the layout analysts already use: a Main Data sheet
// with every scanned row, one sheet per classification flag with call and
// put rows side by side under merged headers, and a Top N sheet ranking
// rows by open interest, change in open interest, traded volume and
// transaction count.
//
// TopN is exported separately so callers can rank rows without building a
// workbook.
package exporter
