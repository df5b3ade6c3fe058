// Package allocationhistory implements the Allocation History query: every allocation ever made,
// open and closed, in the order they were made, together with the names of the book and the member.
// Names of removed books and members are kept, because the history outlives them.
package allocationhistory
