// Package campaign implements simulation-campaign lifecycle management:
// CRUD plus launch, which fans a campaign out to its target group, creates
// the interaction records the tracking pipeline advances, and hands the
// rendered emails to the mail collaborator.
//
// The service depends on repository interfaces defined in this package and
// should never import from the api package. Repository implementations live
// in repository/postgres/ and repository/memory/.
package campaign
