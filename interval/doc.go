/*Package interval reads candidate-interval BED files and summarizes them.
  The pipeline treats peaks.bed as an opaque engine artifact; this package
  exists for reporting only.  It parses the first three BED columns, merges
  overlapping intervals into a union, and returns the counts the controller
  logs after the interval-calling stage.  Nothing here gates stage execution:
  checkpoint existence stays authoritative.
*/
package interval
