// Package scanner implements the Camarilla day-pair analysis for NSE
// equity derivatives.
//
// For every underlying with a stock future in today's snapshot, the
// analyzer picks the nearest-expiry future, selects the at-the-money
// strike among that expiry's options, computes Camarilla pivot bands for
// today's and yesterday's session of the ATM call and put, and classifies
// the pair into range-contraction and range-expansion categories.
//
// Components:
//
//   - pivot.go: Camarilla level computation (pure arithmetic)
//   - atm.go: nearest-strike selection
//   - index.go: composite-key lookup of yesterday's contracts
//   - analyzer.go: day-pair orchestration producing Result rows
package scanner
