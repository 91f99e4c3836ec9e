// Package bhavcopy loads NSE equity-derivatives bhav copy archives into
// normalized in-memory snapshots.
//
// A bhav copy is the exchange's end-of-day dump: one ZIP archive holding
// one UDiFF CSV with OHLC, volume and open-interest figures for every
// listed contract. Loading is all-or-nothing per snapshot; a failed load
// is reported to the caller and the day is skipped, never partially
// ingested.
package bhavcopy
