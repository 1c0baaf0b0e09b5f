// Package nearbite is an embeddable restaurant finder: it queries the
// Documenu geo search API (or a stored response), optionally keeps only
// restaurants matching a cuisine tag, and returns display cards.
//
//	client, _ := nearbite.New(ctx, nearbite.WithDocumenu(os.Getenv("DOCUMENU_API_KEY")))
//	defer client.Close()
//
//	res, err := client.Search(ctx, 39.0997, -94.5786, nearbite.SearchOptions{
//	    Distance:       2,
//	    Tags:           []string{"Burgers"},
//	    OnlyTagMatches: true,
//	})
//	if errors.Is(err, nearbite.ErrNetwork) {
//	    // the provider failed; there are no partial results
//	}
//	for _, c := range res.Cards {
//	    fmt.Println(c.Name, c.Street, c.DistanceMeters)
//	}
//
// Searches never retry. Cancel ctx to abandon one.
package nearbite
