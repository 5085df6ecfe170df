package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/codegangsta/cli"
	"github.com/kevin-cantwell/asciimage"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("asciimage", func() {
	var (
		dir            string
		stdout, stderr bytes.Buffer
		split          string
		exitCode       int
		errOut         bytes.Buffer
	)

	BeforeEach(func() {
		exitCode = -1
		errOut.Reset()
		cli.OsExiter = func(code int) { exitCode = code }
		cli.ErrWriter = &errOut
	})

	AfterEach(func() {
		cli.OsExiter = os.Exit
		cli.ErrWriter = os.Stderr
	})

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "asciimage-cmd")
		Expect(err).NotTo(HaveOccurred())
		stdout.Reset()
		stderr.Reset()

		img := image.NewGray(image.Rect(0, 0, 14, 7))
		for y := 0; y < 7; y++ {
			for x := 0; x < 7; x++ {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
		split = filepath.Join(dir, "split.png")
		f, err := os.Create(split)
		Expect(err).NotTo(HaveOccurred())
		Expect(png.Encode(f, img)).To(Succeed())
		Expect(f.Close()).To(Succeed())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	run := func(args ...string) error {
		return newApp(&stdout, &stderr).Run(append([]string{"asciimage"}, args...))
	}

	It("prints to the terminal by default", func() {
		Expect(run(split)).To(Succeed())
		Expect(stdout.String()).To(Equal("@ \n"))
	})

	It("writes a text file", func() {
		out := filepath.Join(dir, "art.txt")
		Expect(run("--mode", "text", "--out", out, split)).To(Succeed())
		b, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal("@ \n"))
		Expect(stdout.Len()).To(BeZero())
	})

	It("writes a png", func() {
		out := filepath.Join(dir, "art.png")
		Expect(run("-m", "image", "-o", out, split)).To(Succeed())
		Expect(out).To(BeARegularFile())
	})

	It("logs written files at info level", func() {
		out := filepath.Join(dir, "art.txt")
		Expect(run("--mode", "text", "--out", out, "--log-level", "info", split)).To(Succeed())
		Expect(stderr.String()).To(ContainSubstring("[asciimage] wrote " + out))
	})

	It("exits with a diagnostic when the input is missing", func() {
		Expect(run(filepath.Join(dir, "nope.png"))).To(HaveOccurred())
		Expect(exitCode).To(Equal(1))
		Expect(errOut.String()).To(HavePrefix("asciimage: cannot read image: input "))
		Expect(stdout.Len()).To(BeZero())
	})

	It("fails on a missing input without touching the output", func() {
		out := filepath.Join(dir, "art.txt")
		Expect(os.WriteFile(out, []byte("keep"), 0644)).To(Succeed())

		Expect(run("--mode", "text", "--out", out, filepath.Join(dir, "nope.png"))).To(HaveOccurred())
		Expect(exitCode).To(Equal(1))

		b, rerr := os.ReadFile(out)
		Expect(rerr).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal("keep"))
	})

	It("creates no output for a missing input", func() {
		out := filepath.Join(dir, "art.txt")
		Expect(run("--mode", "text", "--out", out, filepath.Join(dir, "nope.png"))).NotTo(Succeed())
		Expect(exitCode).To(Equal(1))
		_, err := os.Stat(out)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("requires an input", func() {
		Expect(run()).To(HaveOccurred())
		Expect(exitCode).To(Equal(1))
		Expect(errOut.String()).To(Equal("asciimage: " + errNoInput.Error() + "\n"))
	})

	It("rejects bad flags before reading the input", func() {
		for _, args := range [][]string{
			{"--divisor", "0", split},
			{"--palette", "@", split},
			{"--mode", "html", split},
		} {
			exitCode = -1
			Expect(run(args...)).To(HaveOccurred())
			Expect(exitCode).To(Equal(1), "%v", args)
		}
		Expect(stdout.Len()).To(BeZero())
	})

	Context("run from the image's directory", func() {
		var wd string

		BeforeEach(func() {
			var err error
			wd, err = os.Getwd()
			Expect(err).NotTo(HaveOccurred())
			Expect(os.Chdir(dir)).To(Succeed())
		})

		AfterEach(func() {
			Expect(os.Chdir(wd)).To(Succeed())
		})

		It("keeps the source png in image mode", func() {
			before, err := os.ReadFile(split)
			Expect(err).NotTo(HaveOccurred())

			Expect(run("-m", "image", "split.png")).To(Succeed())

			after, err := os.ReadFile(split)
			Expect(err).NotTo(HaveOccurred())
			Expect(after).To(Equal(before))
			Expect(filepath.Join(dir, "split.ascii.png")).To(BeARegularFile())
		})

		It("refuses an explicit output naming the input", func() {
			before, err := os.ReadFile(split)
			Expect(err).NotTo(HaveOccurred())

			Expect(run("-m", "image", "-o", "./split.png", "split.png")).To(HaveOccurred())
			Expect(exitCode).To(Equal(1))
			Expect(errOut.String()).To(ContainSubstring(errOverwriteInput.Error()))

			after, err := os.ReadFile(split)
			Expect(err).NotTo(HaveOccurred())
			Expect(after).To(Equal(before))
		})

		It("names text output after the source", func() {
			Expect(run("-m", "text", "split.png")).To(Succeed())
			b, err := os.ReadFile(filepath.Join(dir, "split.txt"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(Equal("@ \n"))
		})
	})

	It("lets a flag switch off an inverted config", func() {
		out := filepath.Join(dir, "art.txt")
		cfg := filepath.Join(dir, "asciimage.yaml")
		body := fmt.Sprintf("mode: text\noutput: %q\nadjust:\n  invert: true\n", out)
		Expect(os.WriteFile(cfg, []byte(body), 0644)).To(Succeed())

		Expect(run("-c", cfg, split)).To(Succeed())
		b, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal(" @\n"))

		Expect(run("-c", cfg, "--invert=false", split)).To(Succeed())
		b, err = os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal("@ \n"))
	})

	It("layers flags over the config file", func() {
		out := filepath.Join(dir, "art.txt")
		cfg := filepath.Join(dir, "asciimage.toml")
		body := fmt.Sprintf("mode = %q\noutput = %q\npalette = \" #\"\n", "text", out)
		Expect(os.WriteFile(cfg, []byte(body), 0644)).To(Succeed())

		Expect(run("--config", cfg, "--palette", ".@", split)).To(Succeed())
		b, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal("@.\n"))
	})

	It("explains failures by kind", func() {
		in := &asciimage.InputError{Path: "x.png", Err: os.ErrNotExist}
		Expect(diagnose(in)).To(HavePrefix("asciimage: cannot read image: input x.png"))
		out := &asciimage.ResourceError{Path: "x.txt", Err: os.ErrPermission}
		Expect(diagnose(out)).To(HavePrefix("asciimage: cannot write output: output x.txt"))
		Expect(diagnose(errNoInput)).To(Equal("asciimage: " + errNoInput.Error()))
	})
})
