// Package retroprice compares the launch price of catalog items (game platforms) in
// today's money.
//
// The core functionalities are split in sub packages:
//   - cpi: loads the consumer price index series published by FRED, averages it per
//     year and computes inflation adjusted prices between two years.
//   - giantbomb: lists catalog items from the Giant Bomb API, paging transparently
//     through offset-based results.
//   - cmd: the subcommands of the `retroprice` command-line tool that joins both into
//     a CSV file and a markdown report.
//
// This package holds what they share: the error taxonomy (TransportError, ParseError,
// SchemaError and ErrUninitialized), the HTTP GET helpers, Money, and the Report.
package retroprice
