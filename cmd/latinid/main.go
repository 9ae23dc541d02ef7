// Package main provides the CLI entrypoint for latinid.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/latintextid/internal/config"
	"github.com/verte-zerg/latintextid/internal/corpus"
	"github.com/verte-zerg/latintextid/internal/model"
	"github.com/verte-zerg/latintextid/internal/morph"
	"github.com/verte-zerg/latintextid/internal/stats"
	"github.com/verte-zerg/latintextid/internal/store"
	"github.com/verte-zerg/latintextid/internal/wordlist"
)

const (
	defaultAnalyzer = "words"
	defaultTop      = 10
)

var (
	analyzerPath    string
	analyzerTimeout time.Duration
	analyzerLexicon string
	analyzerCache   bool
	cachePath       string
	modelsDir       string

	generateName string
	generateOut  string

	topN int

	compareIgnoreCommon bool
	compareIgnoreList   string
	comparePlot         bool
	comparePlotWidth    int

	corpusName string
	corpusTop  int
	corpusOut  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "latinid",
		Short:         "Build and compare statistical models of Latin texts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&modelsDir, "models-dir", config.DefaultModelsDir(), "directory for models referenced by name")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newTopCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newCorpusCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addAnalyzerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&analyzerPath, "analyzer", defaultAnalyzer, "morphological analyzer executable")
	cmd.Flags().DurationVar(&analyzerTimeout, "timeout", morph.DefaultTimeout, "timeout for one analyzer call")
	cmd.Flags().StringVar(&analyzerLexicon, "lexicon", "", "YAML lexicon used instead of the analyzer")
	cmd.Flags().BoolVar(&analyzerCache, "cache", false, "cache analyses in a local database")
	cmd.Flags().StringVar(&cachePath, "cache-path", config.DefaultCachePath(), "analysis cache database")
}

func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "models-dir", &modelsDir, fileCfg.Models.Dir)
	return fileCfg, nil
}

func applyAnalyzerConfig(cmd *cobra.Command, fileCfg config.FileConfig) error {
	applyStringConfig(cmd, "analyzer", &analyzerPath, fileCfg.Analyzer.Path)
	applyStringConfig(cmd, "lexicon", &analyzerLexicon, fileCfg.Analyzer.Lexicon)
	applyBoolConfig(cmd, "cache", &analyzerCache, fileCfg.Analyzer.Cache)
	applyStringConfig(cmd, "cache-path", &cachePath, fileCfg.Analyzer.CachePath)
	timeout, err := fileCfg.Analyzer.TimeoutDuration()
	if err != nil {
		return err
	}
	if timeout > 0 {
		applyDurationConfig(cmd, "timeout", &analyzerTimeout, &timeout)
	}
	if analyzerTimeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	return nil
}

// buildResolver returns the resolver selected by the analyzer settings
// and a cleanup func releasing the analysis cache.
func buildResolver() (morph.Resolver, func(), error) {
	var (
		resolver morph.Resolver
		source   string
	)
	switch {
	case analyzerLexicon != "":
		dict, err := morph.LoadDictionary(analyzerLexicon)
		if err != nil {
			return nil, nil, err
		}
		resolver = dict
		source = "lexicon:" + absPath(analyzerLexicon)
	case analyzerPath != "":
		resolver = &morph.Engine{Path: analyzerPath, Timeout: analyzerTimeout}
		source = engineSource(analyzerPath)
	default:
		return nil, nil, fmt.Errorf("no analyzer configured: set --analyzer or --lexicon")
	}

	if !analyzerCache {
		return resolver, func() {}, nil
	}
	st, err := store.Open(cachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open analysis cache: %w", err)
	}
	cleanup := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close analysis cache: %v\n", cerr)
		}
	}
	return &morph.CachedResolver{Resolver: resolver, Cache: st, Source: source}, cleanup, nil
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <text>",
		Short: "Build a model from a text file and save it",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerateCmd,
	}
	addAnalyzerFlags(cmd)
	cmd.Flags().StringVar(&generateName, "name", "", "model name (default: text file name)")
	cmd.Flags().StringVar(&generateOut, "out", "", "output path (default: <models-dir>/<name>.model)")
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyAnalyzerConfig(cmd, fileCfg); err != nil {
		return err
	}

	textPath := args[0]
	name := generateName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(textPath), filepath.Ext(textPath))
	}
	out := generateOut
	if out == "" {
		out = filepath.Join(modelsDir, name+model.Extension)
	}

	resolver, cleanup, err := buildResolver()
	if err != nil {
		return err
	}
	defer cleanup()

	m := model.New(name)
	ingest, err := m.AddTextFromFile(cmd.Context(), textPath, resolver)
	if err != nil {
		return fmt.Errorf("failed to build model: %w", err)
	}
	logErrln(ingest.String())

	if err := m.Save(out); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "saved model %s to %s\n", name, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <model>",
		Short: "Describe a saved model",
		Args:  cobra.ExactArgs(1),
		RunE:  runSummaryCmd,
	}
}

func runSummaryCmd(cmd *cobra.Command, args []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}
	return stats.RenderSummary(cmd.OutOrStdout(), m)
}

func newTopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top <model>",
		Short: "Show the most frequent stems of a model",
		Args:  cobra.ExactArgs(1),
		RunE:  runTopCmd,
	}
	cmd.Flags().IntVarP(&topN, "count", "n", defaultTop, "number of stems")
	return cmd
}

func runTopCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "count", &topN, fileCfg.Report.Top)
	if topN <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}
	return stats.RenderTopStems(cmd.OutOrStdout(), stats.TopStems(m, topN))
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <model> <other>",
		Short: "Compare two models with t-tests and a Bayes score",
		Args:  cobra.ExactArgs(2),
		RunE:  runCompareCmd,
	}
	cmd.Flags().BoolVar(&compareIgnoreCommon, "ignore-common", false, "skip common function-word stems in the Bayes score")
	cmd.Flags().StringVar(&compareIgnoreList, "ignore-list", "", "file with extra stems to skip, one per line")
	cmd.Flags().BoolVar(&comparePlot, "plot", false, "draw word and sentence length distributions")
	cmd.Flags().IntVar(&comparePlotWidth, "plot-width", 0, "plot width (default: terminal width)")
	return cmd
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "ignore-common", &compareIgnoreCommon, fileCfg.Compare.IgnoreCommon)
	applyStringConfig(cmd, "ignore-list", &compareIgnoreList, fileCfg.Compare.IgnoreList)

	ignore, err := ignoredStems(compareIgnoreCommon, compareIgnoreList)
	if err != nil {
		return err
	}
	m1, err := loadModel(args[0])
	if err != nil {
		return err
	}
	m2, err := loadModel(args[1])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if err := stats.RenderComparison(w, stats.Compare(m1, m2, ignore)); err != nil {
		return err
	}
	if !comparePlot {
		return nil
	}
	opts := stats.HistogramOptions{Width: comparePlotWidth}
	if err := stats.RenderDistributions(w, "Word lengths", stats.WordLengthDistributions(m1, m2), opts); err != nil {
		return err
	}
	return stats.RenderDistributions(w, "Sentence lengths", stats.SentenceLengthDistributions(m1, m2), opts)
}

func ignoredStems(common bool, listPath string) (map[string]struct{}, error) {
	ignore := map[string]struct{}{}
	if common {
		ignore = stats.CommonStemSet()
	}
	if listPath == "" {
		return ignore, nil
	}
	extra, err := wordlist.LoadStems(listPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore list: %w", err)
	}
	for _, stem := range extra {
		ignore[stem] = struct{}{}
	}
	return ignore, nil
}

func newCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus <model>...",
		Short: "Aggregate several models and show document frequencies",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCorpusCmd,
	}
	cmd.Flags().StringVar(&corpusName, "name", "corpus", "corpus name")
	cmd.Flags().IntVarP(&corpusTop, "count", "n", defaultTop, "number of stems")
	cmd.Flags().StringVar(&corpusOut, "out", "", "save the aggregate model to this path")
	return cmd
}

func runCorpusCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "count", &corpusTop, fileCfg.Report.Top)
	if corpusTop <= 0 {
		return fmt.Errorf("--count must be > 0")
	}

	c := corpus.New(corpusName)
	for _, arg := range args {
		m, err := loadModel(arg)
		if err != nil {
			return err
		}
		c.Add(m)
	}

	w := cmd.OutOrStdout()
	if _, err := fmt.Fprint(w, c.String()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	top := stats.TopStems(c.Aggregate(), corpusTop)
	entries := make([]stats.CorpusStem, 0, len(top))
	for _, sc := range top {
		entries = append(entries, stats.CorpusStem{
			Stem:  sc.Stem,
			Count: sc.Count,
			Docs:  c.DocFrequency(sc.Stem),
			IDF:   c.IDF(sc.Stem),
		})
	}
	if err := stats.RenderCorpusStems(w, entries); err != nil {
		return err
	}
	if corpusOut == "" {
		return nil
	}
	if err := c.Aggregate().Save(corpusOut); err != nil {
		return err
	}
	logErrf("saved aggregate model to %s\n", corpusOut)
	return nil
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <word>...",
		Short: "Resolve words to stems with the configured analyzer",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runResolveCmd,
	}
	addAnalyzerFlags(cmd)
	return cmd
}

func runResolveCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyAnalyzerConfig(cmd, fileCfg); err != nil {
		return err
	}
	resolver, cleanup, err := buildResolver()
	if err != nil {
		return err
	}
	defer cleanup()

	memo := morph.NewMemo(resolver)
	w := cmd.OutOrStdout()
	for _, arg := range args {
		word := strings.ToLower(arg)
		res, err := memo.Resolve(cmd.Context(), word)
		if err != nil {
			return fmt.Errorf("failed to resolve %q: %w", word, err)
		}
		line := fmt.Sprintf("%s: unknown", word)
		switch {
		case res.Known() && res.Substantive:
			line = fmt.Sprintf("%s: %s (substantive)", word, res.Stem)
		case res.Known():
			line = fmt.Sprintf("%s: %s", word, res.Stem)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the analysis cache",
	}
	cmd.PersistentFlags().StringVar(&cachePath, "cache-path", config.DefaultCachePath(), "analysis cache database")
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached analysis sources",
		Args:  cobra.NoArgs,
		RunE:  runCacheListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "purge <source>",
		Short: "Delete cached analyses of one source",
		Args:  cobra.ExactArgs(1),
		RunE:  runCachePurgeCmd,
	})
	return cmd
}

func openCache(cmd *cobra.Command) (*store.Store, error) {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return nil, err
	}
	applyStringConfig(cmd, "cache-path", &cachePath, fileCfg.Analyzer.CachePath)
	st, err := store.Open(cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open analysis cache: %w", err)
	}
	return st, nil
}

func runCacheListCmd(cmd *cobra.Command, _ []string) error {
	st, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close analysis cache: %v\n", cerr)
		}
	}()

	sources, err := st.ListSources(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list cache: %w", err)
	}
	w := cmd.OutOrStdout()
	if len(sources) == 0 {
		_, err := fmt.Fprintln(w, "Analysis cache is empty.")
		return err
	}
	for _, s := range sources {
		if _, err := fmt.Fprintf(w, "%s\t%d words\t%d unresolved\tlast saved %s\n",
			s.Source, s.Words, s.Unresolved, s.LastSaved.Local().Format(time.DateTime)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runCachePurgeCmd(cmd *cobra.Command, args []string) error {
	st, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close analysis cache: %v\n", cerr)
		}
	}()

	n, err := st.Purge(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached analyses\n", n)
	return err
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// loadModel loads a model file. A bare name refers to a model saved in the
// models directory.
func loadModel(arg string) (*model.TextModel, error) {
	m, err := model.LoadFile(resolveModelPath(arg, modelsDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", arg, err)
	}
	return m, nil
}

func resolveModelPath(arg, dir string) string {
	if strings.ContainsRune(arg, filepath.Separator) || strings.ContainsRune(arg, '/') || filepath.Ext(arg) != "" {
		return arg
	}
	if _, err := os.Stat(arg); err == nil {
		return arg
	}
	return filepath.Join(dir, arg+model.Extension)
}

// engineSource identifies an analyzer executable by its absolute path so
// cached analyses of different binaries never mix.
func engineSource(path string) string {
	if resolved, err := exec.LookPath(path); err == nil {
		path = resolved
	}
	return "engine:" + absPath(path)
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target, value *time.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# latinid configuration
# Uncomment a value to enable it. CLI flags override config values.

[analyzer]
# path = %q           # Morphological analyzer executable
# timeout = %q          # Timeout for one analyzer call
# lexicon = "lexicon.yaml"  # YAML lexicon used instead of the analyzer
# cache = false             # Cache analyses in a local database
# cache-path = %q

[models]
# dir = %q

[compare]
# ignore-common = false     # Skip common function-word stems in the Bayes score
# ignore-list = "ignore.txt" # Extra stems to skip, one per line

[report]
# top = %d                  # Number of stems shown by top and corpus
`,
		defaultAnalyzer,
		morph.DefaultTimeout.String(),
		config.DefaultCachePath(),
		config.DefaultModelsDir(),
		defaultTop,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
